package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/ArrisFramework/measure/probe"
	"github.com/ArrisFramework/measure/sysinfo"
	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
)

func newSysinfoCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "sysinfo",
		Short: "Print a snapshot of the host and this process",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			p := probe.New(probe.WithLogger(a.log))
			info := sysinfo.Collect(cmd.Context(), p)
			f := a.formatter()
			out := cmd.OutOrStdout()

			fmt.Fprintf(out, "go:        %s %s/%s\n", info.GoVersion, info.OS, info.Arch)
			if info.Hostname != "" {
				fmt.Fprintf(out, "host:      %s (%s, kernel %s)\n", info.Hostname, info.Platform, info.Kernel)
			}
			fmt.Fprintf(out, "cpus:      %d logical, %d physical\n", info.LogicalCPUs, info.PhysicalCPUs)
			if info.LoadAverage != nil {
				loads := make([]string, len(info.LoadAverage))
				for i, l := range info.LoadAverage {
					loads[i] = fmt.Sprintf("%.2f", l)
				}
				fmt.Fprintf(out, "load:      %s\n", strings.Join(loads, " "))
			}
			fmt.Fprintf(out, "memory:    %s total, %s free\n", humanize.IBytes(info.TotalMemory), humanize.IBytes(info.FreeMemory))
			fmt.Fprintf(out, "process:   %s current, %s peak (%s)\n",
				f.Memory(int64(info.CurrentMemory)), f.Memory(int64(info.PeakMemory)), p.Source())
			fmt.Fprintf(out, "timestamp: %s %s\n", info.Timestamp.Format(time.RFC3339), info.Timezone)
			return nil
		},
	}
}
