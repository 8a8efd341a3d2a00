// Package config provides configuration management for the OSS tool server.
//
// Two layers are handled here:
//
//   - LoadConfig reads ambient settings (logging, storage timeouts, NODE_ENV)
//     with Viper from environment variables and an optional .env file.
//   - Resolve builds the server configuration proper: the HTTP port and the
//     set of named OSS bucket configurations.
//
// # Resolution Order
//
// The port comes from --port, then PORT, then 3000. Bucket configurations come
// from --oss-config when given, otherwise OSS_CONFIG_DEFAULT; every other
// OSS_CONFIG_<NAME> variable is merged in afterwards under the lowercased name
// and overwrites an entry of the same name.
//
// Environment access goes through the Source interface so resolution can be
// tested with a MapSource.
//
// # Usage
//
//	cfg, err := config.LoadConfig(".")
//	srv, err := config.Resolve(config.Inputs{StorageJSON: flagValue}, config.EnvSource{}, logger)
//	config.PrintSummary(os.Stdout, srv)
package config
