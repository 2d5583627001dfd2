package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/bjaus/apiclient/surface"
)

func newCheckCmd(v *viper.Viper) *cobra.Command {
	return &cobra.Command{
		Use:   "check",
		Short: "Validate a declaration file without generating code",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			s, err := surface.LoadFile(v.GetString("file"))
			if err != nil {
				return err
			}
			ops := 0
			for _, ep := range s.Endpoints {
				ops += len(ep.Operations)
			}
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "%s: %d endpoints, %d operations\n", s.Package, len(s.Endpoints), ops)
			return err
		},
	}
}
