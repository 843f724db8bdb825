package main

import (
	"fmt"
	"net/http"
	"time"

	"github.com/spf13/cobra"

	"github.com/gordian-engine/tmcore/tm/tmconsensus"
	"github.com/gordian-engine/tmcore/tm/tmdriver"
	"github.com/gordian-engine/tmcore/tm/tmhost"
)

func newServeCmd() *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run one validator's driver and expose its state over HTTP",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd, addr)
		},
	}
	cmd.Flags().StringVar(&addr, "addr", ":8080", "address to listen on")
	return cmd
}

func runServe(cmd *cobra.Command, addr string) error {
	timeouts := tmdriver.TimeoutParams{
		Propose:   2 * time.Second,
		Prevote:   2 * time.Second,
		Precommit: 2 * time.Second,
	}
	nw := newNetwork(4, tmconsensus.Height(1), timeouts)

	ins := tmhost.NewInspector(nw.nodes[0].driver)
	fmt.Fprintf(cmd.OutOrStdout(), "serving validator %s state on %s\n", nw.fixture.NameOf(nw.nodes[0].addr), addr)
	return http.ListenAndServe(addr, ins.Handler())
}
