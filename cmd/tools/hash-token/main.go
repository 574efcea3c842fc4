// Command hash-token derives the pbkdf2 encoding of a bearer token for use
// as the token_hash config key or the TOKEN_HASH environment variable.
package main

import (
	"bufio"
	"flag"
	"fmt"
	"os"
	"strings"

	"tokengate/internal/auth"
)

func main() {
	var token string
	flag.StringVar(&token, "token", "", "Token to hash; read from stdin when omitted")
	flag.Parse()

	if token == "" {
		reader := bufio.NewReader(os.Stdin)
		line, err := reader.ReadString('\n')
		if err != nil && line == "" {
			fatalf("read token from stdin: %v", err)
		}
		token = strings.TrimRight(line, "\r\n")
	}
	if token == "" {
		fatalf("a non-empty token is required")
	}

	encoded, err := auth.HashToken(token)
	if err != nil {
		fatalf("hash token: %v", err)
	}
	fmt.Println(encoded)
}

func fatalf(format string, args ...any) {
	fmt.Fprintf(os.Stderr, format+"\n", args...)
	os.Exit(1)
}
