// Package app is the composition root for the catalog commands.
//
// Run wires configuration, preferences, the zap logger, the source loader,
// the master collection store and the optional file watcher into the
// interactive viewer:
//
//	Run()
//	  ├─> config.Load()        ~/.config/catalog/config.toml, --source override
//	  ├─> logging.New()        JSON lines to log_file (the TUI owns the terminal)
//	  ├─> source.NewClient()   file path or http(s) URL
//	  ├─> prefs.Load()         theme and layout
//	  ├─> watch.New().Start()  only when watch = true and the source is a file
//	  └─> ui.Run()             blocks until quit or context cancel
//
// List and Export share the same setup but log to standard error, load the
// catalogue once, filter it with catalog.Filter and write it through the
// text or HTML medium. Their load failures are returned so the command
// exits non-zero; the viewer instead shows the error row and stays up.
package app
