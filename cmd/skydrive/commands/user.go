package commands

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/skydrive/skydrive/internal/cli/output"
	"github.com/skydrive/skydrive/internal/cli/prompt"
	"github.com/skydrive/skydrive/pkg/config"
	"github.com/skydrive/skydrive/pkg/drive/models"
	"github.com/skydrive/skydrive/pkg/drive/store"
)

var (
	userAddName     string
	userRemoveForce bool
)

var userCmd = &cobra.Command{
	Use:   "user",
	Short: "Manage drive users",
	Long: `Manage SkyDrive user accounts.

Examples:
  skydrive user add alice@example.com --name Alice
  skydrive user list
  skydrive user remove alice@example.com`,
}

var userAddCmd = &cobra.Command{
	Use:   "add <email>",
	Short: "Add a new user (prompts for password)",
	Args:  cobra.ExactArgs(1),
	RunE:  runUserAdd,
}

var userListCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List all users",
	Args:    cobra.NoArgs,
	RunE:    runUserList,
}

var userRemoveCmd = &cobra.Command{
	Use:     "remove <email>",
	Aliases: []string{"delete"},
	Short:   "Remove a user and everything they own",
	Args:    cobra.ExactArgs(1),
	RunE:    runUserRemove,
}

func init() {
	userAddCmd.Flags().StringVar(&userAddName, "name", "", "Display name for the new user")
	userRemoveCmd.Flags().BoolVar(&userRemoveForce, "force", false, "Skip the confirmation prompt")

	userCmd.AddCommand(userAddCmd)
	userCmd.AddCommand(userListCmd)
	userCmd.AddCommand(userRemoveCmd)
}

// openStore loads the configuration and opens the drive store for a CLI
// command. The caller must Close the returned store.
func openStore() (*store.GORMStore, error) {
	cfg, err := config.Load(GetConfigFile())
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	driveStore, err := store.New(&cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("failed to open drive store: %w", err)
	}
	return driveStore, nil
}

func runUserAdd(cmd *cobra.Command, args []string) error {
	email := args[0]

	driveStore, err := openStore()
	if err != nil {
		return err
	}
	defer func() { _ = driveStore.Close() }()

	ctx := cmd.Context()

	if _, err := driveStore.GetUserByEmail(ctx, email); err == nil {
		return fmt.Errorf("user %q already exists", email)
	} else if !errors.Is(err, models.ErrUserNotFound) {
		return err
	}

	password, err := prompt.NewPassword()
	if err != nil {
		if prompt.IsAborted(err) {
			return fmt.Errorf("aborted")
		}
		return err
	}

	hash, err := models.HashPassword(password)
	if err != nil {
		return err
	}

	user := models.User{Email: email, Name: userAddName, PasswordHash: hash}
	if _, err := driveStore.CreateUser(ctx, &user); err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}

	output.DefaultPrinter().Success(fmt.Sprintf("User %s created", email))
	return nil
}

func runUserList(cmd *cobra.Command, args []string) error {
	driveStore, err := openStore()
	if err != nil {
		return err
	}
	defer func() { _ = driveStore.Close() }()

	users, err := driveStore.ListUsers(cmd.Context())
	if err != nil {
		return fmt.Errorf("failed to list users: %w", err)
	}

	table := output.NewTableData("EMAIL", "NAME", "CREATED")
	for _, u := range users {
		table.AddRow(u.Email, u.GetDisplayName(), u.CreatedAt.Format("2006-01-02 15:04"))
	}
	return output.DefaultPrinter().Print(table)
}

func runUserRemove(cmd *cobra.Command, args []string) error {
	email := args[0]

	driveStore, err := openStore()
	if err != nil {
		return err
	}
	defer func() { _ = driveStore.Close() }()

	ctx := cmd.Context()

	if _, err := driveStore.GetUserByEmail(ctx, email); err != nil {
		if errors.Is(err, models.ErrUserNotFound) {
			return fmt.Errorf("user %q not found", email)
		}
		return err
	}

	if !userRemoveForce {
		// Removal takes the user's whole drive with it, so require the email
		// to be typed back.
		label := fmt.Sprintf("Remove %s and every file and folder they own", email)
		confirmed, err := prompt.ConfirmDanger(label, email)
		if err != nil {
			if prompt.IsAborted(err) {
				return fmt.Errorf("aborted")
			}
			return err
		}
		if !confirmed {
			fmt.Println("Cancelled.")
			return nil
		}
	}

	if err := driveStore.DeleteUser(ctx, email); err != nil {
		return fmt.Errorf("failed to remove user: %w", err)
	}

	output.DefaultPrinter().Success(fmt.Sprintf("User %s removed", email))
	return nil
}
