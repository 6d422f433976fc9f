package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"golang.org/x/crypto/bcrypt"
)

// Small admin utility: generates the bcrypt hash to put in
// ADMIN_PASSWORD_HASH. Admin credentials never live in source.
func main() {
	hashCmd := flag.NewFlagSet("hash-password", flag.ExitOnError)
	password := hashCmd.String("password", "", "Password to hash for ADMIN_PASSWORD_HASH")

	if len(os.Args) < 2 {
		fmt.Println("expected 'hash-password' subcommand")
		os.Exit(1)
	}

	switch os.Args[1] {
	case "hash-password":
		hashCmd.Parse(os.Args[2:])
		if *password == "" {
			fmt.Println("password is required")
			hashCmd.PrintDefaults()
			os.Exit(1)
		}
		hashPassword(*password)
	default:
		fmt.Println("expected 'hash-password' subcommand")
		os.Exit(1)
	}
}

func hashPassword(password string) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		log.Fatalf("Failed to hash password: %v", err)
	}
	fmt.Printf("ADMIN_PASSWORD_HASH=%s\n", hashed)
}
