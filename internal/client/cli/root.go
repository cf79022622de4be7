package cli

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"
)

func (a *App) getStatus(ctx context.Context) string {
	if user := a.auth.CurrentUser(ctx); user != nil {
		return fmt.Sprintf("(%s)", user.Email)
	}
	return ""
}

func (a *App) Root(ctx context.Context) {

	fmt.Println("Welcome to HealthKeeper CLI (type 'help' for commands)")
	scanner := bufio.NewScanner(os.Stdin)

	for {
		fmt.Printf("hk %s> ", a.getStatus(ctx))
		if !scanner.Scan() {
			break
		}
		line := scanner.Text()
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}

		cmd := parts[0]
		args := parts[1:]

		switch cmd {
		case "help":
			if a.isSignedIn(ctx) {
				fmt.Println("Available commands: add, list, take, skip, delete, check, backup, restore, backupinfo, logout, exit")
			} else {
				fmt.Println("Available commands: register, login, exit")
			}

		case "register":
			a.register(ctx)
		case "login":
			a.login(ctx)
		case "logout":
			a.logout(ctx)
		case "add":
			a.addMedication(ctx)
		case "list":
			a.listMedications(ctx)
		case "take":
			a.markStatus(ctx, args, true)
		case "skip":
			a.markStatus(ctx, args, false)
		case "delete":
			a.deleteMedication(ctx, args)
		case "check":
			a.checkInteractions(ctx, args)
		case "backup":
			a.backupToCloud(ctx)
		case "restore":
			a.restoreFromCloud(ctx)
		case "backupinfo":
			a.backupInfo(ctx)
		case "exit", "quit":
			fmt.Println("Bye!")
			return
		default:
			fmt.Println("Unknown command:", cmd)
		}
	}

}
