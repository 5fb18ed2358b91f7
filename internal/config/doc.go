// Package config loads euonymus configuration.
//
// A configuration file may be JSON, TOML or YAML; the decoder is chosen by
// the file extension. Every section is optional and missing values take
// the defaults from New.
//
//	name = "todo-demo"
//
//	[binding]
//	override_with_state = false
//	max_depth = 64
//
//	[server]
//	host = "localhost"
//	port = 3000
//
//	[publish]
//	bucket = "snapshots"
//	key = "index.html"
//	region = "us-east-1"
//
//	[metrics]
//	enabled = true
//	namespace = "euonymus"
//
// # Usage
//
//	cfg, err := config.Load("euonymus.toml")
//	if err != nil {
//	    errors.PrintError(err)
//	    os.Exit(1)
//	}
//	cell := binding.NewCell("", binding.WithConfig(cfg.BindingConfig()))
package config
