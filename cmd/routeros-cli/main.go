// Command routeros-cli runs a single RouterOS API command and prints its
// reply, the way openvpn-ip-updater exercised the original Go client
// against one fixed endpoint. This is a generic version: it dials, logs
// in, issues whatever command and attribute words are given on the
// command line, and prints the returned rows.
package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/rtician/routeros"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var (
		host     string
		port     int
		user     string
		password string
		oldLogin bool
		debug    bool
	)

	cmd := &cobra.Command{
		Use:   "routeros-cli COMMAND [key=value ...]",
		Short: "Run a single RouterOS API command and print its reply",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			zerolog.SetGlobalLevel(zerolog.InfoLevel)
			if debug {
				zerolog.SetGlobalLevel(zerolog.DebugLevel)
			}
			return run(host, port, user, password, oldLogin, args)
		},
	}

	// Defaults mirror openvpn-ip-updater's flag defaults: same router
	// hostname and port RouterOS ships with out of the box.
	cmd.Flags().StringVar(&host, "host", "192.168.88.1", "Hostname or IP of the router")
	cmd.Flags().IntVar(&port, "port", routeros.DefaultPort, "Port to use")
	cmd.Flags().StringVar(&user, "user", "admin", "User to authenticate with")
	cmd.Flags().StringVar(&password, "password", "", "Password to authenticate with")
	cmd.Flags().BoolVar(&oldLogin, "old-login", false, "Use the pre-v6.43 MD5 challenge login method")
	cmd.Flags().BoolVar(&debug, "debug", false, "Enable debug logging")

	return cmd
}

func run(host string, port int, user, password string, oldLogin bool, args []string) error {
	command := args[0]
	attrs := map[string]string{}
	var words []string
	for _, a := range args[1:] {
		if key, value, found := strings.Cut(a, "="); found {
			attrs[key] = value
		} else {
			words = append(words, a)
		}
	}

	log.Info().Str("host", host).Int("port", port).Str("command", command).Msg("connecting")

	session, err := routeros.Login(context.Background(), user, password, host, port, oldLogin)
	if err != nil {
		log.Error().Err(err).Msg("login failed")
		return err
	}
	defer session.Close()

	var rows []routeros.Reply
	if len(attrs) > 0 {
		rows, err = session.CallAttrs(command, attrs)
	} else {
		rows, err = session.CallWords(command, words...)
	}
	if err != nil {
		log.Error().Err(err).Msg("command failed")
		return err
	}

	for i, row := range rows {
		if i > 0 {
			fmt.Println()
		}
		for k, v := range row {
			fmt.Printf("%s=%s\n", k, v)
		}
	}
	return nil
}
