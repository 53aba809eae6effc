// Command glitched launches a Java game client from the command line:
// it resolves the local install, builds the launch command for an
// offline identity, and supervises the game process while streaming its
// output.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"

	launcher "github.com/iamglitched-debug/glitched.launcher"
	"github.com/iamglitched-debug/glitched.launcher/internal/command"
	"github.com/iamglitched-debug/glitched.launcher/internal/config"
	"github.com/iamglitched-debug/glitched.launcher/internal/environment"
	"github.com/iamglitched-debug/glitched.launcher/internal/history"
	"github.com/iamglitched-debug/glitched.launcher/internal/launch"
	"github.com/iamglitched-debug/glitched.launcher/internal/logging"
	"github.com/iamglitched-debug/glitched.launcher/internal/supervisor"
	"github.com/iamglitched-debug/glitched.launcher/internal/sysopen"
)

func main() {
	log.SetFlags(0)
	log.SetPrefix("glitched: ")

	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}

	cmd := os.Args[1]
	args := os.Args[2:]

	var err error
	switch cmd {
	case "launch":
		err = launchMain(args)
	case "versions":
		err = versionsMain(args)
	case "mods":
		err = modsMain(args)
	case "history":
		err = historyMain(args)
	case "version":
		fmt.Println(launcher.Version)
	case "help", "-h", "--help":
		usage()
	default:
		fmt.Fprintf(os.Stderr, "glitched: unknown command %q\n", cmd)
		usage()
		os.Exit(2)
	}

	if err != nil {
		log.Fatal(err)
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, `Usage: glitched <command> [flags]

Commands:
  launch      Launch the game and stream its output
  versions    List installed versions
  mods        Open the mod folder in the file browser
  history     Show recent launches
  version     Print the launcher version
  help        Show this help

Use "glitched <command> -h" for command-specific flags.`)
}

// --- launch ---

func launchMain(args []string) error {
	fs := flag.NewFlagSet("launch", flag.ExitOnError)
	name := fs.String("name", "", "offline username (required)")
	version := fs.String("version", "", "target game version (default from config)")
	loaderFlag := fs.String("loader", "", "mod loader: none, fabric or forge")
	ram := fs.Int("ram", 0, "memory limit in MB (default from config)")
	width := fs.Int("width", 0, "window width (default from config)")
	height := fs.Int("height", 0, "window height (default from config)")
	dirFlag := fs.String("dir", "", "game directory (default: platform install dir)")
	verbose := fs.Bool("v", false, "mirror diagnostics to stderr")
	_ = fs.Parse(args)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	stateDir := config.StateDir()
	cfg, err := config.Load(stateDir)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	logger, err := logging.Init(stateDir, *verbose)
	if err != nil {
		return err
	}

	req, err := buildRequest(cfg, *name, *version, *loaderFlag, *ram, *width, *height)
	if err != nil {
		return err
	}

	eng := newEngine(cfg, resolveBaseDir(cfg, *dirFlag), stateDir, logger)

	sink := func(line string) {
		fmt.Println(line)
	}

	done, err := eng.Launch(ctx, req, sink)
	if err != nil {
		return err
	}
	outcome := <-done

	if outcome.ExitCode == nil {
		return errors.New(outcome.FailureReason)
	}
	if *outcome.ExitCode != 0 {
		os.Exit(*outcome.ExitCode)
	}
	return nil
}

// buildRequest merges flags with config defaults into a launch request.
func buildRequest(cfg *config.Config, name, version, loaderName string, ram, width, height int) (launch.Request, error) {
	if version == "" {
		version = cfg.Version
	}
	if version == "" {
		return launch.Request{}, errors.New("no version given: pass -version or set version in launcher.yml")
	}
	if loaderName == "" {
		loaderName = cfg.Loader
	}
	loader, err := launch.ParseLoader(loaderName)
	if err != nil {
		return launch.Request{}, err
	}
	if ram <= 0 {
		ram = cfg.MemoryMB()
	}
	if width <= 0 {
		width = cfg.Width()
	}
	if height <= 0 {
		height = cfg.Height()
	}
	return launch.Request{
		Username: name,
		Version:  version,
		Loader:   loader,
		MemoryMB: ram,
		Width:    width,
		Height:   height,
	}, nil
}

func resolveBaseDir(cfg *config.Config, flagDir string) string {
	if flagDir != "" {
		return flagDir
	}
	if cfg.GameDir != "" {
		return cfg.GameDir
	}
	return environment.DefaultBaseDir()
}

func newEngine(cfg *config.Config, baseDir, stateDir string, logger zerolog.Logger) *launch.Engine {
	disk := history.NewDiskStore(filepath.Join(stateDir, "history"))
	return &launch.Engine{
		Resolver: &environment.LocalResolver{Base: baseDir},
		Builder:  &command.JavaBuilder{Java: cfg.Java()},
		Launcher: &supervisor.Supervisor{},
		History:  history.NewLRUStore(cfg.HistorySize(), disk),
		Log:      logger,
	}
}

// --- versions ---

func versionsMain(args []string) error {
	fs := flag.NewFlagSet("versions", flag.ExitOnError)
	channel := fs.String("channel", "release", "version channel: release or all")
	dirFlag := fs.String("dir", "", "game directory (default: platform install dir)")
	_ = fs.Parse(args)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	cfg, err := config.Load(config.StateDir())
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	resolver := &environment.LocalResolver{Base: resolveBaseDir(cfg, *dirFlag)}
	ids := resolver.ListVersions(ctx, *channel)
	if len(ids) == 0 {
		fmt.Fprintln(os.Stderr, "no installed versions found")
		return nil
	}
	for _, id := range ids {
		fmt.Println(id)
	}
	return nil
}

// --- mods ---

func modsMain(args []string) error {
	fs := flag.NewFlagSet("mods", flag.ExitOnError)
	version := fs.String("version", "", "target game version (default from config)")
	loaderFlag := fs.String("loader", "", "mod loader: none, fabric or forge")
	dirFlag := fs.String("dir", "", "game directory (default: platform install dir)")
	_ = fs.Parse(args)

	cfg, err := config.Load(config.StateDir())
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	v := *version
	if v == "" {
		v = cfg.Version
	}
	loaderName := *loaderFlag
	if loaderName == "" {
		loaderName = cfg.Loader
	}
	loader, err := launch.ParseLoader(loaderName)
	if err != nil {
		return err
	}

	resolver := &environment.LocalResolver{Base: resolveBaseDir(cfg, *dirFlag)}
	dir, err := resolver.ModDir(v, loader)
	if err != nil {
		return err
	}
	fmt.Println(dir)
	return sysopen.Open(dir)
}

// --- history ---

func historyMain(args []string) error {
	fs := flag.NewFlagSet("history", flag.ExitOnError)
	limit := fs.Int("n", 10, "number of records to show")
	_ = fs.Parse(args)

	store := history.NewDiskStore(filepath.Join(config.StateDir(), "history"))
	recs, err := store.List(*limit)
	if err != nil {
		return err
	}
	if len(recs) == 0 {
		fmt.Fprintln(os.Stderr, "no launches recorded")
		return nil
	}

	for _, r := range recs {
		outcome := "failed: " + r.FailureReason
		if r.ExitCode != nil {
			outcome = fmt.Sprintf("exit %d", *r.ExitCode)
		}
		fmt.Printf("%s  %-12s %-18s %-8s %-10s %s\n",
			r.StartedAt.Local().Format(time.DateTime),
			r.Username, r.Version, r.Loader,
			(time.Duration(r.DurationMS) * time.Millisecond).Round(time.Second),
			outcome)
	}
	return nil
}
