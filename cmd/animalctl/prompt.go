package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"
)

// readPassword reads the password from passwordFile, or prompts without echo
// when passwordFile is empty or "-".
func readPassword(stdin io.Reader, stderr io.Writer, passwordFile string) (string, error) {
	if passwordFile != "" && passwordFile != "-" {
		return readSecretFile(passwordFile)
	}

	f, ok := stdin.(*os.File)
	if !ok || !term.IsTerminal(int(f.Fd())) {
		return "", errors.New("no terminal available for interactive password prompt (use --password-file)")
	}

	fmt.Fprint(stderr, "Contraseña: ")
	password, err := term.ReadPassword(int(f.Fd()))
	fmt.Fprintln(stderr)
	if err != nil {
		return "", fmt.Errorf("reading password: %w", err)
	}
	if len(password) == 0 {
		return "", errors.New("password is empty")
	}
	return string(password), nil
}

// readSecretFile reads a secret, stripping trailing newlines.
func readSecretFile(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("reading %s: %w", path, err)
	}

	secret := strings.TrimRight(string(data), "\r\n")
	if secret == "" {
		return "", fmt.Errorf("file %s is empty (after stripping trailing newlines)", path)
	}
	return secret, nil
}

// confirm asks a yes/no question on stdin. Anything but yes is no.
func confirm(stdin io.Reader, stderr io.Writer, question string) (bool, error) {
	fmt.Fprintf(stderr, "%s [s/N]: ", question)

	line, err := bufio.NewReader(stdin).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return false, fmt.Errorf("reading answer: %w", err)
	}

	switch strings.ToLower(strings.TrimSpace(line)) {
	case "s", "si", "sí", "y", "yes":
		return true, nil
	}
	return false, nil
}
