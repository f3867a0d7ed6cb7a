package main

import (
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"text/tabwriter"

	"portfolio3d/internal/assets"
	"portfolio3d/internal/components"
	"portfolio3d/internal/config"
	"portfolio3d/internal/engine"
	"portfolio3d/internal/game"

	"github.com/hashicorp/go-hclog"
	"github.com/spf13/cobra"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		_, _ = fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

type options struct {
	configPath string
	logLevel   string
	width      int32
	height     int32
}

func newRootCmd() *cobra.Command {
	var opts options

	root := &cobra.Command{
		Use:           "portfolio",
		Short:         "Interactive 3D portfolio room",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return run(cmd, &opts)
		},
	}
	root.PersistentFlags().StringVar(&opts.configPath, "config", "", "YAML config file (defaults are used when empty)")
	root.PersistentFlags().StringVar(&opts.logLevel, "log-level", "info", "trace|debug|info|warn|error")
	root.Flags().Int32Var(&opts.width, "width", 0, "window width override")
	root.Flags().Int32Var(&opts.height, "height", 0, "window height override")

	root.AddCommand(newInspectCmd(&opts))
	return root
}

func newLogger(level string, out io.Writer) hclog.Logger {
	return hclog.New(&hclog.LoggerOptions{
		Name:   "portfolio",
		Level:  hclog.LevelFromString(level),
		Output: out,
	})
}

// chdirToExecutable moves to the binary's directory for deployed builds so
// the bundled assets resolve. "go run" builds into a temp go-build directory
// and is left alone.
func chdirToExecutable(logger hclog.Logger) {
	execPath, err := os.Executable()
	if err != nil {
		return
	}
	execDir := filepath.Dir(execPath)
	if strings.Contains(execDir, "go-build") {
		return
	}
	if err := os.Chdir(execDir); err != nil {
		logger.Warn("could not change to executable directory", "dir", execDir, "error", err)
	}
}

func run(cmd *cobra.Command, opts *options) error {
	logger := newLogger(opts.logLevel, cmd.ErrOrStderr())

	// Resolve the config path before moving away from the caller's directory.
	root := ""
	if opts.configPath != "" {
		abs, err := filepath.Abs(opts.configPath)
		if err != nil {
			return fmt.Errorf("config path: %w", err)
		}
		opts.configPath = abs
		root = filepath.Dir(abs)
	}
	chdirToExecutable(logger)

	cfg, err := config.Load(opts.configPath)
	if err != nil {
		return err
	}
	if opts.width > 0 {
		cfg.Window.Width = opts.width
	}
	if opts.height > 0 {
		cfg.Window.Height = opts.height
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()

	return game.New(cfg, root, logger).Run(ctx)
}

func newInspectCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "inspect <model.glb>",
		Short: "List a model's nodes with their material class and the targets it provides",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := newLogger(opts.logLevel, cmd.ErrOrStderr())
			return inspect(cmd.OutOrStdout(), args[0], logger)
		},
	}
}

func inspect(out io.Writer, path string, logger hclog.Logger) error {
	nodes, err := assets.ReadNodes(path)
	if err != nil {
		return err
	}
	room := assets.BuildRoom(nodes, logger)
	defer room.Dispose()

	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	_, _ = fmt.Fprintln(tw, "NODE\tMESHES\tCLASS\tTARGET")
	room.Scene.Traverse(func(g *engine.GameObject) {
		meshes, class := "-", "-"
		if mr := engine.GetComponent[*components.MeshRenderer](g); mr != nil {
			meshes = fmt.Sprint(mr.MeshCount)
			class = room.Class(g).String()
		}
		target := ""
		if obj, ok := room.Interactives.ByObject(g); ok {
			target = obj.Target.String()
		}
		_, _ = fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", g.Name, meshes, class, target)
	})
	if err := tw.Flush(); err != nil {
		return err
	}

	s := room.Stats
	_, _ = fmt.Fprintf(out, "\n%d nodes, %d meshes: %d textured, %d targets, %d screens, %d other\n",
		len(nodes), assets.MeshCount(nodes), s.Textured, s.Target, s.Screen, s.Other)
	for _, t := range room.Interactives.Missing() {
		_, _ = fmt.Fprintf(out, "missing target: %s\n", t)
	}
	return nil
}
