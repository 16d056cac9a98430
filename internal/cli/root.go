package cli

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"
)

func (a *App) getStatus() string {
	if a.isUnlocked() {
		return "(unlocked)"
	}
	return "(locked)"
}

func (a *App) Root(ctx context.Context) {

	fmt.Println("Welcome to the vault (type 'help' for commands)")
	scanner := bufio.NewScanner(os.Stdin)

	for {
		fmt.Printf("vault %s> ", a.getStatus())
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
			if a.isUnlocked() {
				fmt.Println("Available commands: list, add, show <id>, delete <id>, status, logout, exit")
			} else {
				fmt.Println("Available commands: setup, login, status, exit")
			}

		case "status":
			a.Status(ctx)
		case "setup":
			a.Setup(ctx)
		case "login":
			a.Login(ctx)
		case "logout":
			a.Logout(ctx)
		case "add":
			a.add(ctx)
		case "list":
			a.list(ctx)
		case "show":
			a.show(ctx, args)
		case "delete":
			a.delete(ctx, args)
		case "exit", "quit":
			fmt.Println("Bye!")
			return
		default:
			fmt.Printf("Unknown command %q; type 'help'\n", cmd)
		}
	}
}
