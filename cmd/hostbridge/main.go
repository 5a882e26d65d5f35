// Package main is the entry point for the hostbridge build host.
package main

import (
	"fmt"
	"log"

	"hostbridge/internal/config"
	"hostbridge/internal/devserver"
	"hostbridge/internal/host"
	"hostbridge/internal/resource"
	"hostbridge/internal/vfs"
	"hostbridge/internal/watcher"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	opts, err := cfg.CompilerOptions()
	if err != nil {
		log.Fatalf("Invalid compiler options: %v", err)
	}

	log.Printf("hostbridge - compiler host bridge")
	log.Printf("Config file: %s", cfg.GetConfigFilePath())
	if cfg.GitRef != "" {
		log.Printf("Base path: %s (git ref: %s)", cfg.BasePath, cfg.GitRef)
	} else {
		log.Printf("Base path: %s", cfg.BasePath)
	}

	// Backing store: working tree, or a pristine git ref
	var backing vfs.Host
	if cfg.GitRef != "" {
		backing = vfs.NewGitHost(cfg.BasePath, cfg.GitRef)
	} else {
		backing = vfs.NewLocalHost(cfg.BasePath)
	}
	overlay := vfs.NewOverlayHost(backing)

	// Resource loader reads through the overlay so generated content
	// stays visible to transforms
	var loader resource.Loader
	if cfg.Resources {
		loader = resource.NewTransformLoader(func(path string) ([]byte, error) {
			return overlay.Read(vfs.Normalize(path))
		})
	}

	compilerHost := host.NewCompilerHost(opts, cfg.BasePath, overlay, loader)

	server := devserver.NewServer(compilerHost)

	// Setup file watcher if enabled
	if cfg.Watch {
		w, err := watcher.New(cfg)
		if err != nil {
			log.Printf("Warning: failed to create file watcher: %v", err)
		} else {
			w.OnChange(func(e watcher.Event) {
				compilerHost.Invalidate(e.Path)
				server.NotifyChanged()
			})
			if err := w.Start(); err != nil {
				log.Printf("Warning: failed to start file watcher: %v", err)
			}
			defer func() { _ = w.Stop() }()
			log.Printf("File watcher enabled")
		}
	}

	log.Printf("Dev server starting at: http://localhost:%d", cfg.Port)

	addr := fmt.Sprintf(":%d", cfg.Port)
	if err := server.Router().Run(addr); err != nil {
		log.Fatalf("Server failed: %v", err)
	}
}
