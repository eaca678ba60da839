/*
Package config reads engine settings from dotenv files and the environment.

	cfg, err := config.Load(".env")
	if err != nil {
		return err
	}
	engine, err := primed.NewEngineFromConfig(cfg)

Recognized variables:
  - PRIMED_CYCLE_POLICY: strict (default) or lenient
  - PRIMED_MAX_DEPTH: nesting limit, 0 for none
  - PRIMED_LOG_LEVEL: debug, info, warn, error, or none (default)
  - PRIMED_SCHEMA: path of a YAML schema loaded into the engine's registry
*/
package config
