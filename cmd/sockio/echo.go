// File: cmd/sockio/echo.go
// Author: momentics <momentics@gmail.com>

package main

import (
	"bytes"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/momentics/hioload-io/pool"
	"github.com/momentics/hioload-io/sock"
	"github.com/momentics/hioload-io/tcp"
)

func newEchoServerCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "echo-server",
		Short: "Accept connections and echo every byte back",
		RunE:  echoServerAction,
	}
	cmd.Flags().String("listen", "127.0.0.1", "address to bind")
	cmd.Flags().Uint16("port", 9001, "port to bind (0 = ephemeral)")
	return cmd
}

func echoServerAction(cmd *cobra.Command, _ []string) error {
	log, err := newLogger(cmd)
	if err != nil {
		return err
	}
	defer log.Sync() //nolint:errcheck

	host, _ := cmd.Flags().GetString("listen")
	port, _ := cmd.Flags().GetUint16("port")

	l, err := tcp.Listen(cmd.Context(), host, port, tcp.WithLogger(log))
	if err != nil {
		return err
	}
	defer l.Close()
	fmt.Fprintf(cmd.OutOrStdout(), "echo server on %s\n", l.BoundInfo())

	bufs := pool.NewBytePool(64 * 1024)
	return l.Serve(func(c *sock.Socket) {
		defer c.Close()
		buf := bufs.GetBuffer()
		defer bufs.PutBuffer(buf)
		for {
			res, err := c.Recv(buf)
			if err != nil {
				log.Warn("recv failed", zap.Error(err))
				return
			}
			n := res.EnsureNonBlock()
			if n == 0 {
				return
			}
			if _, err := c.SendAll(buf[:n]); err != nil {
				log.Warn("send failed", zap.Error(err))
				return
			}
		}
	})
}

func newEchoClientCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "echo-client",
		Short: "Send a payload to an echo server and verify the echo",
		RunE:  echoClientAction,
	}
	cmd.Flags().String("connect", "127.0.0.1", "server address")
	cmd.Flags().Uint16("port", 9001, "server port")
	cmd.Flags().Int("payload-size", 10000, "bytes to send")
	return cmd
}

func echoClientAction(cmd *cobra.Command, _ []string) error {
	log, err := newLogger(cmd)
	if err != nil {
		return err
	}
	defer log.Sync() //nolint:errcheck

	host, _ := cmd.Flags().GetString("connect")
	port, _ := cmd.Flags().GetUint16("port")
	size, _ := cmd.Flags().GetInt("payload-size")

	c, err := tcp.DialRetry(cmd.Context(), host, port,
		tcp.WithLogger(log), tcp.WithNoDelay(true))
	if err != nil {
		return err
	}
	defer c.Close()

	payload := make([]byte, size)
	for i := range payload {
		payload[i] = byte(i)
	}
	sent, err := c.SendAll(payload)
	if err != nil {
		return err
	}
	if sent != int64(size) {
		return fmt.Errorf("peer closed after %d of %d bytes", sent, size)
	}

	echoed := make([]byte, 0, size)
	buf := make([]byte, 32*1024)
	for len(echoed) < size {
		res, err := c.Recv(buf)
		if err != nil {
			return err
		}
		n := res.EnsureNonBlock()
		if n == 0 {
			return fmt.Errorf("connection closed after %d of %d bytes", len(echoed), size)
		}
		echoed = append(echoed, buf[:n]...)
	}
	if !bytes.Equal(echoed, payload) {
		return fmt.Errorf("echo mismatch")
	}
	fmt.Fprintf(cmd.OutOrStdout(), "echoed %d bytes OK\n", size)
	return nil
}
