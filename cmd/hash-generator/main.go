// Command hash-generator prints bcrypt hashes for seeding users directly
// into the database. Passwords are taken from the arguments, or one per line
// from stdin when none are given.
package main

import (
	"bufio"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/phrazzld/tasks-api/internal/service/auth"
)

func main() {
	cost := flag.Int("cost", 0, "bcrypt cost (0 selects the library default)")
	flag.Parse()

	if err := run(os.Stdout, os.Stdin, *cost, flag.Args()); err != nil {
		fmt.Fprintf(os.Stderr, "hash-generator: %v\n", err)
		os.Exit(1)
	}
}

func run(out io.Writer, in io.Reader, cost int, passwords []string) error {
	hasher := auth.NewBcryptHasher(cost)

	if len(passwords) == 0 {
		scanner := bufio.NewScanner(in)
		for scanner.Scan() {
			passwords = append(passwords, scanner.Text())
		}
		if err := scanner.Err(); err != nil {
			return fmt.Errorf("read passwords: %w", err)
		}
	}

	for _, password := range passwords {
		hash, err := hasher.Hash(password)
		if err != nil {
			return fmt.Errorf("hash password: %w", err)
		}
		if _, err := fmt.Fprintln(out, hash); err != nil {
			return err
		}
	}
	return nil
}
