// Package credctl is an operator tool for the credential service: it reads a
// password from the terminal and runs it through Hash and Validate.
package credctl

import (
	"context"
	"encoding/hex"
	"errors"
	"flag"
	"fmt"
	"io"
	"time"

	"github.com/dmitrijs2005/useraccounts/internal/account/credclient"
	"github.com/dmitrijs2005/useraccounts/internal/common"
	"github.com/dmitrijs2005/useraccounts/internal/requestid"
)

// ErrMismatch is returned when the credential service rejects the password.
var ErrMismatch = errors.New("password does not match")

const usage = `usage: credctl [-g addr] [-r timeout] <command> [flags]

commands:
  hash   -u id                 hash a password, print hash and salt (hex)
  verify -hash hex -salt hex   check a password against a stored hash
  check  -u id                 hash a password, then verify a second entry
`

// CredentialClient is the part of the credential service credctl uses.
type CredentialClient interface {
	Hash(ctx context.Context, userID int32, password string) (hash, salt []byte, err error)
	Validate(ctx context.Context, password string, hash, salt []byte) (bool, error)
}

// Options are the global flags.
type Options struct {
	Addr    string
	Timeout time.Duration
	Args    []string
}

// ParseOptions reads the global flags; the rest of args is the command.
func ParseOptions(args []string, w io.Writer) (*Options, error) {
	o := &Options{}
	fs := flag.NewFlagSet("credctl", flag.ContinueOnError)
	fs.SetOutput(w)
	fs.Usage = func() { fmt.Fprint(w, usage) }
	fs.StringVar(&o.Addr, "g", "localhost:50551", "credential service address")
	fs.DurationVar(&o.Timeout, "r", credclient.DefaultTimeout, "call timeout")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	o.Args = fs.Args()
	if len(o.Args) == 0 {
		fs.Usage()
		return nil, flag.ErrHelp
	}
	return o, nil
}

type App struct {
	client CredentialClient
	out    io.Writer
}

func NewApp(client CredentialClient, out io.Writer) *App {
	return &App{client: client, out: out}
}

// Run executes one command. args[0] is the command name.
func (a *App) Run(ctx context.Context, args []string) error {
	if len(args) == 0 {
		fmt.Fprint(a.out, usage)
		return flag.ErrHelp
	}
	ctx = requestid.NewContext(ctx, requestid.New())

	switch args[0] {
	case "hash":
		return a.hash(ctx, args[1:])
	case "verify":
		return a.verify(ctx, args[1:])
	case "check":
		return a.check(ctx, args[1:])
	default:
		fmt.Fprint(a.out, usage)
		return fmt.Errorf("unknown command %q", args[0])
	}
}

func (a *App) hash(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("hash", flag.ContinueOnError)
	fs.SetOutput(a.out)
	userID := fs.Int("u", 0, "user id")
	if err := fs.Parse(args); err != nil {
		return err
	}

	hash, salt, err := a.hashPrompted(ctx, int32(*userID))
	if err != nil {
		return err
	}

	fmt.Fprintf(a.out, "user_id: %d\nhash:    %s\nsalt:    %s\n", *userID, hex.EncodeToString(hash), hex.EncodeToString(salt))
	return nil
}

func (a *App) verify(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("verify", flag.ContinueOnError)
	fs.SetOutput(a.out)
	hashHex := fs.String("hash", "", "stored hash, hex")
	saltHex := fs.String("salt", "", "stored salt, hex")
	if err := fs.Parse(args); err != nil {
		return err
	}

	hash, err := hex.DecodeString(*hashHex)
	if err != nil || len(hash) == 0 {
		return fmt.Errorf("%w: -hash must be non-empty hex", common.ErrorValidation)
	}
	salt, err := hex.DecodeString(*saltHex)
	if err != nil || len(salt) == 0 {
		return fmt.Errorf("%w: -salt must be non-empty hex", common.ErrorValidation)
	}

	return a.validatePrompted(ctx, "Password: ", hash, salt)
}

func (a *App) check(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("check", flag.ContinueOnError)
	fs.SetOutput(a.out)
	userID := fs.Int("u", 0, "user id")
	if err := fs.Parse(args); err != nil {
		return err
	}

	hash, salt, err := a.hashPrompted(ctx, int32(*userID))
	if err != nil {
		return err
	}
	return a.validatePrompted(ctx, "Re-enter password: ", hash, salt)
}

func (a *App) hashPrompted(ctx context.Context, userID int32) ([]byte, []byte, error) {
	pw, err := getPassword(a.out, "Password: ")
	if err != nil {
		return nil, nil, err
	}
	defer common.WipeByteArray(pw)

	hash, salt, err := a.client.Hash(ctx, userID, string(pw))
	if err != nil {
		return nil, nil, fmt.Errorf("hash: %w", err)
	}
	return hash, salt, nil
}

func (a *App) validatePrompted(ctx context.Context, prompt string, hash, salt []byte) error {
	pw, err := getPassword(a.out, prompt)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(pw)

	ok, err := a.client.Validate(ctx, string(pw), hash, salt)
	if err != nil {
		return fmt.Errorf("validate: %w", err)
	}
	if !ok {
		fmt.Fprintln(a.out, "mismatch")
		return ErrMismatch
	}
	fmt.Fprintln(a.out, "ok")
	return nil
}
