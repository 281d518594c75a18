// File: cmd/sockio/resolve.go
// Author: momentics <momentics@gmail.com>

package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/momentics/hioload-io/resolver"
	"github.com/momentics/hioload-io/sockaddr"
)

func newResolveCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "resolve HOST [PORT]",
		Short: "Resolve a hostname into typed connection infos",
		Args:  cobra.RangeArgs(1, 2),
		RunE:  resolveAction,
	}
	cmd.Flags().Bool("udp", false, "resolve for datagram use instead of stream")
	cmd.Flags().String("dns-server", "", "resolve via this DNS server (host:port) instead of the system facility")
	return cmd
}

func resolveAction(cmd *cobra.Command, args []string) error {
	host := args[0]
	var port uint16
	if len(args) == 2 {
		n, err := strconv.ParseUint(args[1], 10, 16)
		if err != nil {
			return fmt.Errorf("bad port %q: %w", args[1], err)
		}
		port = uint16(n)
	}

	r := resolver.Global()
	if server, _ := cmd.Flags().GetString("dns-server"); server != "" {
		r = &resolver.DNSResolver{Server: server}
	}

	udp, _ := cmd.Flags().GetBool("udp")
	var (
		addr sockaddr.SocketAddress
		err  error
	)
	if udp {
		addr, err = resolver.ResolveUDP(cmd.Context(), host, port, r)
	} else {
		addr, err = resolver.ResolveTCP(cmd.Context(), host, port, r)
	}
	if err != nil {
		return err
	}
	if addr.Empty() {
		return fmt.Errorf("no usable endpoints for %s", host)
	}
	for _, ci := range addr.Infos() {
		fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\n", ci.Family(), ci)
	}
	return nil
}
