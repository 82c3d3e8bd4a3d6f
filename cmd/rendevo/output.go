package main

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/gosuri/uitable"

	rendevo "github.com/rendevo/client-go"
)

func (a *app) printJSON(v any) error {
	enc := json.NewEncoder(a.cfg.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("encode output: %w", err)
	}
	return nil
}

func (a *app) printTable(table *uitable.Table) error {
	_, err := fmt.Fprintln(a.cfg.Stdout, table.String())
	return err
}

func (a *app) printAuth(resp *rendevo.AuthResponse) error {
	if a.jsonOutput() {
		return a.printJSON(resp)
	}
	table := uitable.New()
	table.Separator = " "
	table.AddRow("access_token:", resp.AccessToken)
	table.AddRow("refresh_token:", resp.RefreshToken)
	table.AddRow("user:", resp.User.Email)
	table.AddRow("role:", resp.User.Role)
	return a.printTable(table)
}

func (a *app) printMessage(resp *rendevo.MessageResponse) error {
	if a.jsonOutput() {
		return a.printJSON(resp)
	}
	table := uitable.New()
	table.Separator = " "
	table.AddRow("message:", resp.Message)
	if resp.Token != "" {
		table.AddRow("token:", resp.Token)
	}
	return a.printTable(table)
}

func (a *app) printUser(user *rendevo.User) error {
	if a.jsonOutput() {
		return a.printJSON(user)
	}
	table := uitable.New()
	table.RightAlign(0)
	table.MaxColWidth = 80
	table.Separator = " "
	table.AddRow("id:", user.ID)
	table.AddRow("email:", user.Email)
	table.AddRow("name:", user.FirstName+" "+user.LastName)
	table.AddRow("role:", user.Role)
	table.AddRow("active:", user.IsActive)
	table.AddRow("verified:", formatTime(user.EmailVerifiedAt))
	table.AddRow("created:", user.CreatedAt.Format(time.RFC3339))
	table.AddRow("updated:", user.UpdatedAt.Format(time.RFC3339))
	return a.printTable(table)
}

func (a *app) printUsers(users []rendevo.User) error {
	if a.jsonOutput() {
		return a.printJSON(users)
	}
	table := uitable.New()
	table.MaxColWidth = 40
	table.AddRow("ID", "EMAIL", "NAME", "ROLE", "ACTIVE", "VERIFIED")
	for _, u := range users {
		table.AddRow(u.ID, u.Email, u.FirstName+" "+u.LastName, u.Role, u.IsActive, formatTime(u.EmailVerifiedAt))
	}
	return a.printTable(table)
}

func formatTime(t *time.Time) string {
	if t == nil {
		return "-"
	}
	return t.Format(time.RFC3339)
}
