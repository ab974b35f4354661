package main

import (
	"fmt"

	"github.com/2beens/ironlog/internal/users"
	"github.com/2beens/ironlog/pkg"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var (
	useraddUsername string
	useraddEmail    string
	useraddPassword string
)

var useraddCmd = &cobra.Command{
	Use:   "useradd",
	Short: "Create an account",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		user, err := newUser(useraddUsername, useraddEmail, useraddPassword)
		if err != nil {
			return err
		}

		created, err := users.NewRepo(dbPool).Add(cmd.Context(), *user)
		if err != nil {
			return err
		}

		color.Green("✓ Added user %s", created.Username)
		fmt.Printf("  id: %d\n", created.ID)
		return nil
	},
}

// newUser applies the signup rules to the flags and hashes the password.
func newUser(username, email, password string) (*users.User, error) {
	req := users.SignupRequest{
		Username: username,
		Email:    email,
		Password: password,
	}
	if err := req.Validate(); err != nil {
		return nil, err
	}

	hash, err := pkg.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	return &users.User{
		Username:     req.Username,
		Email:        req.Email,
		PasswordHash: hash,
	}, nil
}

func init() {
	useraddCmd.Flags().StringVar(&useraddUsername, "username", "", "login name")
	useraddCmd.Flags().StringVar(&useraddEmail, "email", "", "email address")
	useraddCmd.Flags().StringVar(&useraddPassword, "password", "", "password (at least 6 characters)")
	_ = useraddCmd.MarkFlagRequired("username")
	_ = useraddCmd.MarkFlagRequired("email")
	_ = useraddCmd.MarkFlagRequired("password")
}
