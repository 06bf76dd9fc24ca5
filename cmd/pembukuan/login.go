package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/hasanstore/pembukuan/internal/auth"
	"github.com/hasanstore/pembukuan/internal/cli"
	"github.com/hasanstore/pembukuan/internal/common"
	"github.com/hasanstore/pembukuan/internal/config"
)

func loginCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "login",
		Short: "Log in to the bookkeeping backend",
		Long: `Authenticate against the store account.

Credentials can be passed as flags or entered interactively.
With --remember, they are saved for the next login.`,
		RunE: runLogin,
	}

	cmd.Flags().StringP("username", "u", "", "account username")
	cmd.Flags().StringP("password", "w", "", "account password")
	cmd.Flags().Bool("remember", false, "remember credentials")

	return cmd
}

func runLogin(cmd *cobra.Command, _ []string) error {
	store, err := config.NewDefaultStore()
	if err != nil {
		return fmt.Errorf("failed to open config store: %w", err)
	}
	svc := auth.NewService(store)

	username, _ := cmd.Flags().GetString("username")
	password, _ := cmd.Flags().GetString("password")
	remember, _ := cmd.Flags().GetBool("remember")

	// Fall back to saved credentials, then to interactive prompts.
	if username == "" || password == "" {
		savedUser, savedPass, savedRemember := svc.SavedCredentials()
		if savedRemember && savedUser != "" && savedPass != "" {
			username, password = savedUser, savedPass
			remember = true
		}
	}

	if username == "" || password == "" {
		reader := cli.NewNonBlockingReader(os.Stdin)
		ctx := cmd.Context()

		if username == "" {
			fmt.Print(cli.FormatPrompt("Username"))
			username, err = reader.ReadLine(ctx)
			if err != nil {
				return err
			}
		}
		if password == "" {
			fmt.Print(cli.FormatPrompt("Password"))
			password, err = reader.ReadLine(ctx)
			if err != nil {
				return err
			}
		}
	}

	if err := svc.Login(username, password, remember); err != nil {
		fmt.Println(cli.FormatError(common.UserMessage(err)))
		return err
	}

	fmt.Println(cli.FormatSuccess("Login berhasil. Selamat datang, " + username + "!"))
	return nil
}

func logoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Clear the stored session",
		RunE: func(_ *cobra.Command, _ []string) error {
			store, err := config.NewDefaultStore()
			if err != nil {
				return fmt.Errorf("failed to open config store: %w", err)
			}

			if err := auth.NewService(store).Logout(); err != nil {
				return fmt.Errorf("failed to log out: %w", err)
			}

			slog.Info("session cleared")
			fmt.Println(cli.FormatSuccess("Berhasil logout."))
			return nil
		},
	}
}
