package account

import (
	"context"
	"fmt"
	"time"

	"github.com/hfletcher/gutlog/internal/billing"
	"github.com/hfletcher/gutlog/internal/cli"
)

const billingTimeout = 15 * time.Second

type PremiumCmd struct {
	Status    PremiumStatusCmd    `cmd:"" default:"1" help:"Show your subscription status."`
	Offerings PremiumOfferingsCmd `cmd:"" help:"List available subscription packages."`
	Restore   PremiumRestoreCmd   `cmd:"" help:"Restore a purchase made on another device."`
}

type PremiumStatusCmd struct{}

func (c *PremiumStatusCmd) Run(ctx *cli.Context) error {
	userID, err := ctx.RequireUser()
	if err != nil {
		return err
	}

	opCtx, cancel := context.WithTimeout(context.Background(), billingTimeout)
	defer cancel()

	premium, err := ctx.Billing.IsPremium(opCtx, userID)
	if err != nil {
		return fmt.Errorf("could not check subscription: %w", err)
	}
	if premium {
		fmt.Println("⭐ Premium is active")
	} else {
		fmt.Println("Free plan. Run 'gutlog premium offerings' to see upgrades.")
	}
	return nil
}

type PremiumOfferingsCmd struct{}

func (c *PremiumOfferingsCmd) Run(ctx *cli.Context) error {
	opCtx, cancel := context.WithTimeout(context.Background(), billingTimeout)
	defer cancel()

	offerings, err := ctx.Billing.Offerings(opCtx)
	if err != nil {
		return fmt.Errorf("could not fetch offerings: %w", err)
	}
	if len(offerings) == 0 {
		fmt.Println("No packages available right now.")
		return nil
	}
	for _, o := range offerings {
		fmt.Printf("%-20s %-10s %s\n", o.Title, o.PriceString, o.Description)
	}
	return nil
}

type PremiumRestoreCmd struct{}

func (c *PremiumRestoreCmd) Run(ctx *cli.Context) error {
	userID, err := ctx.RequireUser()
	if err != nil {
		return err
	}

	opCtx, cancel := context.WithTimeout(context.Background(), billingTimeout)
	defer cancel()

	sub, err := ctx.Billing.Restore(opCtx, userID)
	if err != nil {
		return fmt.Errorf("restore failed: %w", err)
	}
	if ent, ok := sub.Entitlements["premium"]; ok && activeEntitlement(ent) {
		fmt.Println("⭐ Premium restored")
	} else {
		fmt.Println("No active purchases found for this account.")
	}
	return nil
}

func activeEntitlement(e billing.Entitlement) bool {
	return e.ExpiresAt == nil || e.ExpiresAt.After(time.Now())
}
