// Copyright 2026 The Bridgeboot Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/spf13/pflag"

	"github.com/mautrix/bridgeboot/lib/binhash"
	"github.com/mautrix/bridgeboot/lib/bootstrap"
	"github.com/mautrix/bridgeboot/lib/launch"
	"github.com/mautrix/bridgeboot/lib/logging"
	"github.com/mautrix/bridgeboot/lib/logpatch"
	"github.com/mautrix/bridgeboot/lib/ownership"
	"github.com/mautrix/bridgeboot/lib/process"
	"github.com/mautrix/bridgeboot/lib/regen"
	"github.com/mautrix/bridgeboot/lib/startup"
	"github.com/mautrix/bridgeboot/lib/version"
)

// bridgeBinaryName is the bridge executable shipped in the image,
// looked up next to the entrypoint binary and then on PATH when
// --bridge-binary is not given.
const bridgeBinaryName = "mautrix-twitter"

func main() {
	if err := run(); err != nil {
		process.Fatal(err)
	}
}

func run() error {
	var (
		dataDir          string
		configPath       string
		registrationPath string
		templatePath     string
		bridgeBinary     string
		uid              int
		gid              int
		showVersion      bool
	)

	flagSet := pflag.NewFlagSet("bridgeboot", pflag.ContinueOnError)
	flagSet.StringVar(&dataDir, "data-dir", "/data", "writable data directory whose ownership is normalized")
	flagSet.StringVar(&configPath, "config", "/data/config.yaml", "path to the bridge config")
	flagSet.StringVar(&registrationPath, "registration", "/data/registration.yaml", "path to the appservice registration")
	flagSet.StringVar(&templatePath, "template", "", "default config template (default: example-config.yaml next to this binary)")
	flagSet.StringVar(&bridgeBinary, "bridge-binary", "", "path to the bridge binary (auto-detected if empty)")
	flagSet.IntVar(&uid, "uid", -1, "runtime user id (default: BRIDGEBOOT_UID, else 1337)")
	flagSet.IntVar(&gid, "gid", -1, "runtime group id (default: BRIDGEBOOT_GID, else 1337)")
	flagSet.BoolVar(&showVersion, "version", false, "print version information and exit")
	if err := flagSet.Parse(os.Args[1:]); err != nil {
		if err == pflag.ErrHelp {
			return nil
		}
		return err
	}
	if args := flagSet.Args(); len(args) > 0 {
		return fmt.Errorf("unexpected argument: %s", args[0])
	}

	if showVersion {
		fmt.Printf("bridgeboot %s\n", version.Info())
		return nil
	}

	logger := logging.NewLogger()
	slog.SetDefault(logger)

	// Resolve the target identity once; it is threaded as a parameter
	// into both the chown and the privilege drop.
	identity, err := ownership.Resolve(uid, gid)
	if err != nil {
		return err
	}
	logger.Info("runtime identity resolved", "identity", identity.String())

	if templatePath == "" {
		templatePath = bootstrap.DefaultTemplatePath()
		if templatePath == "" {
			return fmt.Errorf("cannot locate the shipped config template; set --template")
		}
	}

	// Find and validate the bridge binary up front. Two of the three
	// startup paths invoke it, and a broken image should fail with a
	// precise error rather than partway through a stage.
	if bridgeBinary == "" {
		bridgeBinary = findBridgeBinary(logger)
	}
	if err := validateBinary(bridgeBinary, bridgeBinaryName); err != nil {
		return fmt.Errorf("bridge binary: %w\n  Install the bridge or set --bridge-binary to its path", err)
	}
	if digest, hashErr := binhash.FileDigest(bridgeBinary); hashErr == nil {
		logger.Info("bridge binary resolved", "path", bridgeBinary, "sha256", digest)
	} else {
		logger.Warn("failed to hash bridge binary", "path", bridgeBinary, "error", hashErr)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	orchestrator := &startup.Orchestrator{
		ConfigPath:       configPath,
		RegistrationPath: registrationPath,
		Bootstrap: func() error {
			return bootstrap.CopyTemplate(templatePath, configPath)
		},
		Generate: func(ctx context.Context) error {
			generator := &regen.Generator{
				BridgeBinary:     bridgeBinary,
				ConfigPath:       configPath,
				RegistrationPath: registrationPath,
			}
			return generator.Generate(ctx)
		},
		Normalize: func() error {
			return normalize(dataDir, configPath, identity, logger)
		},
		Launch: func() error {
			launcher := &launch.Launcher{
				BridgeBinary: bridgeBinary,
				ConfigPath:   configPath,
				Identity:     identity,
			}
			return launcher.Exec()
		},
		Logger: logger,
	}

	outcome, err := orchestrator.Run(ctx)
	if err != nil {
		return err
	}
	logger.Info("startup complete", "outcome", outcome.String())
	return nil
}

// normalize re-owns the data directory tree and repairs the known-bad
// logging configuration. Runs on every path that reaches it: after
// bootstrap, after successful generation, and always before launch, so
// files created by a root-owned stage end up accessible to the runtime
// identity.
func normalize(dataDir, configPath string, identity ownership.Spec, logger *slog.Logger) error {
	if err := ownership.ChownTree(dataDir, identity); err != nil {
		return err
	}
	changed, err := logpatch.PatchFile(configPath)
	if err != nil {
		return err
	}
	if changed {
		logger.Info("removed file logging pointed at the read-only install directory",
			"config", configPath)
	}
	return nil
}

// findBridgeBinary looks for the bridge next to the entrypoint binary
// (the standard image layout), then on PATH. Returns an empty string
// if not found; the caller validates the result with validateBinary.
func findBridgeBinary(logger *slog.Logger) string {
	executable, err := os.Executable()
	if err == nil {
		candidate := filepath.Join(filepath.Dir(executable), bridgeBinaryName)
		if _, err := os.Stat(candidate); err == nil {
			logger.Info("found bridge next to entrypoint", "path", candidate)
			return candidate
		}
	}

	path, err := exec.LookPath(bridgeBinaryName)
	if err == nil {
		logger.Info("found bridge on PATH", "path", path)
		return path
	}

	return ""
}

// validateBinary checks that a binary path points to a regular,
// executable file. Returns a precise error describing what's wrong and
// where it looked.
func validateBinary(path, name string) error {
	if path == "" {
		return fmt.Errorf("%s not found (checked next to entrypoint binary and PATH)", name)
	}

	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("%s at %q: %w", name, path, err)
	}

	if !info.Mode().IsRegular() {
		return fmt.Errorf("%s at %q is not a regular file (mode %s)", name, path, info.Mode())
	}

	if info.Mode()&0111 == 0 {
		return fmt.Errorf("%s at %q is not executable (mode %s)", name, path, info.Mode())
	}

	return nil
}
