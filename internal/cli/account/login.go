package account

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/huh"

	"github.com/hfletcher/gutlog/internal/cli"
	"github.com/hfletcher/gutlog/internal/session"
)

type LoginCmd struct {
	Token string `arg:"" optional:"" help:"Access token issued by the backend. Prompted for when omitted."`
}

func (c *LoginCmd) Run(ctx *cli.Context) error {
	token := strings.TrimSpace(c.Token)
	if token == "" {
		form := huh.NewForm(huh.NewGroup(
			huh.NewInput().
				Title("Access token").
				Description("Paste the token from your account page").
				EchoMode(huh.EchoModePassword).
				Value(&token),
		))
		if err := form.Run(); err != nil {
			return err
		}
		token = strings.TrimSpace(token)
	}
	if token == "" {
		return fmt.Errorf("no token provided")
	}

	id, err := session.Login(token)
	if err != nil {
		return fmt.Errorf("login failed: %w", err)
	}

	who := id.Email
	if who == "" {
		who = id.UserID
	}
	fmt.Printf("✓ Signed in as %s\n", who)
	return nil
}

type LogoutCmd struct{}

func (c *LogoutCmd) Run(ctx *cli.Context) error {
	if err := session.Logout(); err != nil {
		return fmt.Errorf("logout failed: %w", err)
	}
	fmt.Println("✓ Signed out. Your local data is untouched.")
	return nil
}

type WhoamiCmd struct{}

func (c *WhoamiCmd) Run(ctx *cli.Context) error {
	id, err := session.Current()
	if err != nil {
		return err
	}
	fmt.Printf("User ID  %s\n", id.UserID)
	if id.Email != "" {
		fmt.Printf("Email    %s\n", id.Email)
	}
	if !id.ExpiresAt.IsZero() {
		fmt.Printf("Expires  %s\n", id.ExpiresAt.Format("2006-01-02 15:04"))
	}
	return nil
}
