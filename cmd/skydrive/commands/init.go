package commands

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/skydrive/skydrive/internal/cli/prompt"
	"github.com/skydrive/skydrive/pkg/api"
	"github.com/skydrive/skydrive/pkg/config"
	"github.com/skydrive/skydrive/pkg/drive/models"
	"github.com/skydrive/skydrive/pkg/drive/store"
)

var (
	initForce    bool
	initPassword string
	initSkipSeed bool
)

// Demo account seeded next to the bootstrap account so a fresh install has
// two users to exercise ownership isolation with.
const secondaryDemoEmail = "test@example.com"

// Folders every seeded account starts with.
var seedFolderNames = []string{"Documents", "Photos", "Work"}

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize configuration and seed demo accounts",
	Long: `Initialize a sample SkyDrive configuration file and seed the database
with the bootstrap accounts and their starter folders.

By default, the configuration file is created at $XDG_CONFIG_HOME/skydrive/config.yaml.
Use --config to specify a custom path.

Seeding prompts for the demo account password unless one is provided with
--password or a password_hash is already present in the bootstrap section
of the configuration.

Examples:
  # Initialize with default location
  skydrive init

  # Initialize with custom path
  skydrive init --config /etc/skydrive/config.yaml

  # Force overwrite existing config
  skydrive init --force

  # Non-interactive seeding
  skydrive init --password changeme123

  # Only write the config file
  skydrive init --skip-seed`,
	RunE: runInit,
}

func init() {
	initCmd.Flags().BoolVar(&initForce, "force", false, "Force overwrite existing config file")
	initCmd.Flags().StringVar(&initPassword, "password", "", "Password for the seeded demo accounts (prompts if empty)")
	initCmd.Flags().BoolVar(&initSkipSeed, "skip-seed", false, "Write the config file without seeding demo accounts")
}

func runInit(cmd *cobra.Command, args []string) error {
	configFile := GetConfigFile()

	var configPath string
	var err error

	if configFile != "" {
		// Use custom path
		err = config.InitConfigToPath(configFile, initForce)
		configPath = configFile
	} else {
		// Use default path
		configPath, err = config.InitConfig(initForce)
	}

	if err != nil {
		return fmt.Errorf("failed to initialize config: %w", err)
	}

	fmt.Printf("Configuration file created at: %s\n", configPath)

	if !initSkipSeed {
		if err := seedDemoAccounts(cmd.Context(), configPath); err != nil {
			return err
		}
	}

	fmt.Println("\nNext steps:")
	fmt.Println("  1. Edit the configuration file to customize your setup")
	fmt.Println("  2. Start the server with: skydrive start")
	fmt.Printf("  3. Or specify custom config: skydrive start --config %s\n", configPath)
	fmt.Println("\nSecurity note:")
	fmt.Println("  A random JWT secret has been generated for development use.")
	fmt.Println("  For production, generate a secure secret and use an environment variable:")
	fmt.Println("    # Generates a 64-character hex string (32 bytes of entropy)")
	fmt.Printf("    export %s=$(openssl rand -hex 32)\n", api.EnvJWTSecret)

	return nil
}

// seedDemoAccounts creates the bootstrap account, a secondary demo account,
// and the starter folders for each. Accounts that already exist are left
// untouched, so running init twice is safe.
func seedDemoAccounts(ctx context.Context, configPath string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("failed to load config for seeding: %w", err)
	}

	passwordHash, err := resolveSeedPasswordHash(cfg)
	if err != nil {
		if prompt.IsAborted(err) {
			fmt.Println("Seeding skipped.")
			return nil
		}
		return err
	}

	driveStore, err := store.New(&cfg.Database)
	if err != nil {
		return fmt.Errorf("failed to open drive store: %w", err)
	}
	defer func() { _ = driveStore.Close() }()

	accounts := []models.User{
		{Email: cfg.Bootstrap.Email, Name: cfg.Bootstrap.Name, PasswordHash: passwordHash},
		{Email: secondaryDemoEmail, Name: "Test", PasswordHash: passwordHash},
	}

	for _, account := range accounts {
		if err := seedAccount(ctx, driveStore, account); err != nil {
			return err
		}
	}

	return nil
}

// resolveSeedPasswordHash picks the password for the seeded accounts, in
// order of precedence: --password flag, bootstrap.password_hash from the
// config, interactive prompt.
func resolveSeedPasswordHash(cfg *config.Config) (string, error) {
	if initPassword != "" {
		return models.HashPassword(initPassword)
	}
	if cfg.Bootstrap.PasswordHash != "" {
		return cfg.Bootstrap.PasswordHash, nil
	}

	fmt.Printf("\nChoose a password for the demo accounts (%s, %s).\n", cfg.Bootstrap.Email, secondaryDemoEmail)
	password, err := prompt.NewPassword()
	if err != nil {
		return "", err
	}
	return models.HashPassword(password)
}

func seedAccount(ctx context.Context, driveStore *store.GORMStore, account models.User) error {
	if _, err := driveStore.GetUserByEmail(ctx, account.Email); err == nil {
		fmt.Printf("Account %s already exists, skipping\n", account.Email)
		return nil
	} else if !errors.Is(err, models.ErrUserNotFound) {
		return fmt.Errorf("failed to check account %s: %w", account.Email, err)
	}

	userID, err := driveStore.CreateUser(ctx, &account)
	if err != nil {
		return fmt.Errorf("failed to create account %s: %w", account.Email, err)
	}

	for _, name := range seedFolderNames {
		folder := models.Folder{Name: name, UserID: userID}
		if _, err := driveStore.CreateFolder(ctx, &folder); err != nil {
			return fmt.Errorf("failed to create folder %q for %s: %w", name, account.Email, err)
		}
	}

	fmt.Printf("Account %s created with folders %v\n", account.Email, seedFolderNames)
	return nil
}
