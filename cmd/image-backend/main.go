package main

import (
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/ironsheep/image-backend/internal/config"
	"github.com/ironsheep/image-backend/internal/server"
)

// Version information - set by ldflags during build
var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

func main() {
	configPath := ""

	args := os.Args[1:]
	for i := 0; i < len(args); i++ {
		switch args[i] {
		case "--version", "-v", "version":
			fmt.Printf("image-backend %s\n", Version)
			fmt.Printf("  Build time: %s\n", BuildTime)
			fmt.Printf("  Git commit: %s\n", GitCommit)
			return
		case "--help", "-h", "help":
			printHelp()
			return
		case "--config", "-c":
			if i+1 >= len(args) {
				fmt.Fprintln(os.Stderr, "--config needs a file path")
				os.Exit(2)
			}
			i++
			configPath = args[i]
		default:
			fmt.Fprintf(os.Stderr, "unknown argument %q, see --help\n", args[i])
			os.Exit(2)
		}
	}

	// stdout carries the protocol, logs go to stderr
	log.Logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()

	cfg, err := config.Load(configPath)
	if err != nil {
		log.Fatal().Err(err).Msg("could not load configuration")
	}

	if cfg.Log.JSON {
		log.Logger = zerolog.New(os.Stderr).With().Timestamp().Logger()
	}
	zerolog.SetGlobalLevel(cfg.LogLevel())

	log.Info().
		Str("version", Version).
		Str("build_time", BuildTime).
		Str("commit", GitCommit).
		Int("max_pixels", cfg.Limits.MaxPixels).
		Msg("starting image-backend")

	srv := server.New(cfg.Engine(),
		server.WithMaxRequestBytes(cfg.Server.MaxRequestBytes),
		server.WithVersion(Version),
		server.WithLogger(log.Logger),
	)
	if err := srv.Run(); err != nil {
		log.Fatal().Err(err).Msg("server error")
	}
}

func printHelp() {
	fmt.Println("image-backend - image transform backend for desktop shells")
	fmt.Println()
	fmt.Println("Usage: image-backend [options]")
	fmt.Println()
	fmt.Println("Options:")
	fmt.Println("  --config, -c FILE  Read settings from FILE instead of image-backend.toml")
	fmt.Println("  --version, -v      Print version information")
	fmt.Println("  --help, -h         Print this help message")
	fmt.Println()
	fmt.Println("Environment variables:")
	fmt.Println("  IMAGE_BACKEND_LOG_LEVEL=debug          Enable debug logging")
	fmt.Println("  IMAGE_BACKEND_LOG_JSON=true            Log JSON instead of console text")
	fmt.Println("  IMAGE_BACKEND_LIMITS_MAX_PIXELS=N      Reject images larger than N pixels")
	fmt.Println("  IMAGE_BACKEND_ENCODE_JPEG_QUALITY=N    Default JPEG quality (1-100)")
	fmt.Println("  IMAGE_BACKEND_ENCODE_WEBP_QUALITY=N    Default WebP quality, 0 for lossless")
	fmt.Println("  IMAGE_BACKEND_SERVER_MAX_REQUEST_BYTES=N")
	fmt.Println()
	fmt.Println("Requests are read as JSON-RPC lines on stdin; responses go to stdout.")
}
