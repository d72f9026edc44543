package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/loragriffin/blog-app/app/config"
	"github.com/loragriffin/blog-app/app/database"
	"github.com/loragriffin/blog-app/app/logger"
	"github.com/loragriffin/blog-app/service"
	"github.com/spf13/cobra"
)

const cliVersion = "1.0.0"

// exit is swapped out in tests
var exit = os.Exit

var errNoCommand = errors.New("no command given")

func main() {
	exit(run(context.Background(), os.Args[1:], os.Stdin, os.Stdout))
}

// run executes the CLI and returns the process exit code.
func run(ctx context.Context, args []string, in io.Reader, out io.Writer) int {
	root := newRootCmd(in, out)
	root.SetArgs(args)
	if err := root.ExecuteContext(ctx); err != nil {
		if !errors.Is(err, service.ErrCancelled) && !errors.Is(err, errNoCommand) {
			fmt.Fprintf(out, "Error: %v\n", err)
		}
		return 1
	}
	return 0
}

func newRootCmd(in io.Reader, out io.Writer) *cobra.Command {
	var envFile string

	root := &cobra.Command{
		Use:           "blog",
		Short:         "A minimal blog: posts, authors, pages and comments",
		SilenceErrors: true,
		SilenceUsage:  true,
		RunE: func(cmd *cobra.Command, args []string) error {
			_ = cmd.Help()
			return errNoCommand
		},
	}
	root.SetIn(in)
	root.SetOut(out)
	root.SetErr(out)
	root.PersistentFlags().StringVar(&envFile, "env-file", ".env", "optional dotenv file read before the environment")

	loadConfig := func() (*config.Config, error) {
		cfg, err := config.Load(envFile)
		if err != nil {
			return nil, err
		}
		logger.Init(cfg.Log.Level, cfg.Log.Pretty)
		return cfg, nil
	}

	badgerPath := func() (string, error) {
		cfg, err := loadConfig()
		if err != nil {
			return "", err
		}
		if cfg.Database.Driver != "badger" {
			return "", fmt.Errorf("this command only supports the badger driver, configured driver is %q", cfg.Database.Driver)
		}
		return cfg.Database.Path, nil
	}

	console := func(force bool) service.Console {
		return service.Console{In: in, Out: out, Force: force}
	}

	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the blog web server",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			return service.RunAppServer(cmd.Context(), cfg)
		},
	}

	initCmd := &cobra.Command{
		Use:   "init",
		Short: "Initialize a new empty database",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := badgerPath()
			if err != nil {
				return err
			}
			return service.InitDB(path, console(false))
		},
	}

	var cleanForce bool
	cleanCmd := &cobra.Command{
		Use:   "clean",
		Short: "Remove the blog database",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := badgerPath()
			if err != nil {
				return err
			}
			return service.Clean(path, console(cleanForce))
		},
	}
	cleanCmd.Flags().BoolVarP(&cleanForce, "force", "f", false, "do not ask for confirmation")

	var backupDir string
	backupCmd := &cobra.Command{
		Use:   "backup",
		Short: "Create a backup of the database",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := badgerPath()
			if err != nil {
				return err
			}
			_, err = service.Backup(path, backupDir, console(false))
			return err
		},
	}
	backupCmd.Flags().StringVar(&backupDir, "dir", "data/backups", "directory the backup file is written to")

	var restoreForce bool
	restoreCmd := &cobra.Command{
		Use:   "restore <file>",
		Short: "Restore the database from a backup",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := badgerPath()
			if err != nil {
				return err
			}
			return service.Restore(path, args[0], console(restoreForce))
		},
	}
	restoreCmd.Flags().BoolVarP(&restoreForce, "force", "f", false, "replace an existing database without asking")

	seedCmd := &cobra.Command{
		Use:   "seed <file>",
		Short: "Load authors and posts from a YAML file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			repo, err := database.Open(cfg.Database)
			if err != nil {
				return err
			}
			defer repo.Close()

			result, err := service.SeedFromFile(cmd.Context(), repo, args[0])
			if err != nil {
				return err
			}
			fmt.Fprintf(out, "Seeded %d authors and %d posts\n", result.Authors, result.Posts)
			return nil
		},
	}

	versionCmd := &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(out, "blog version %s\n", cliVersion)
		},
	}

	root.AddCommand(serveCmd, initCmd, cleanCmd, backupCmd, restoreCmd, seedCmd, versionCmd)
	return root
}
