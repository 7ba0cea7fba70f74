// Command provision creates or updates an operator account. There is no
// registration endpoint; accounts are managed with this tool only.
//
// Usage:
//
//	provision -d postgres://... -u admin
//
// The password is read interactively so it never lands in shell history.
package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	"golang.org/x/term"

	"github.com/ymori23/ranking-server/internal/server/models"
	"github.com/ymori23/ranking-server/internal/server/shared/db"
	"github.com/ymori23/ranking-server/internal/server/users"
)

func readPassword() (string, error) {
	fmt.Print("Password: ")

	if term.IsTerminal(int(os.Stdin.Fd())) {
		defer fmt.Println()
		b, err := term.ReadPassword(int(os.Stdin.Fd()))
		if err != nil {
			return "", err
		}
		return string(b), nil
	}

	// piped input (scripts, tests)
	line, err := bufio.NewReader(os.Stdin).ReadString('\n')
	if err != nil {
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}

func main() {

	dsn := flag.String("d", "", "database DSN")
	username := flag.String("u", "", "username to create or update")
	flag.Parse()

	if *dsn == "" || *username == "" {
		log.Fatal("both -d and -u are required")
	}

	password, err := readPassword()
	if err != nil {
		log.Fatalf("cannot read password: %v", err)
	}
	if password == "" {
		log.Fatal("password must not be empty")
	}

	hash, err := users.HashPassword(password)
	if err != nil {
		log.Fatalf("cannot hash password: %v", err)
	}

	manager, err := db.NewPostgresRepositoryManager(*dsn)
	if err != nil {
		log.Fatalf("db init error: %v", err)
	}
	defer manager.Close()

	user, err := manager.Users().Upsert(context.Background(), &models.User{
		Username:     *username,
		PasswordHash: hash,
	})
	if err != nil {
		log.Fatalf("cannot provision user: %v", err)
	}

	fmt.Printf("user %q ready (id=%d)\n", user.Username, user.ID)
}
