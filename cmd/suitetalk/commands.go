package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/suitegate/go-suitetalk/netsuite"
	"github.com/suitegate/go-suitetalk/wsdl"
)

func wsdlURLCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "wsdl-url",
		Short: "Print the WSDL location for the configured version and environment",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := loadSettings()
			if err != nil {
				return err
			}

			if u := s.stringVal(cmd, "wsdl", "wsdl", wsdlURL); u != "" {
				fmt.Printf("WSDL: %s\n", u)
				fmt.Printf("Host: %s\n", wsdl.Hostname(u))
				return nil
			}

			ver := s.stringVal(cmd, "version", "version", version)
			if ver == "" {
				ver = netsuite.DefaultVersion
			}
			u, err := wsdl.URL(ver, s.boolVal(cmd, "sandbox", "sandbox", sandbox))
			if err != nil {
				return err
			}
			fmt.Printf("WSDL: %s\n", u)
			fmt.Printf("Host: %s\n", wsdl.Hostname(u))
			return nil
		},
	}
}

func serverTimeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "server-time",
		Short: "Print the server time and the local clock skew",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := newClient(cmd)
			if err != nil {
				return err
			}
			defer c.Close()

			ctx, cancel := commandContext()
			defer cancel()

			serverTime, err := c.GetServerTime(ctx)
			if err != nil {
				return err
			}
			fmt.Printf("Server time: %s\n", serverTime.Format(time.RFC3339))

			skew, err := c.ClockSkew(ctx)
			if err != nil {
				return err
			}
			switch {
			case skew > 0:
				fmt.Printf("Clock skew:  local clock is %s ahead\n", skew.Round(time.Millisecond))
			case skew < 0:
				fmt.Printf("Clock skew:  local clock is %s behind\n", (-skew).Round(time.Millisecond))
			default:
				fmt.Println("Clock skew:  none")
			}
			return nil
		},
	}
}

func dataCenterURLsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "data-center-urls [account]",
		Short: "Print the service domains hosting an account",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := newClient(cmd)
			if err != nil {
				return err
			}
			defer c.Close()

			ctx, cancel := commandContext()
			defer cancel()

			lookup := ""
			if len(args) == 1 {
				lookup = args[0]
			}
			urls, err := c.GetDataCenterURLs(ctx, lookup)
			if err != nil {
				return err
			}

			fmt.Printf("REST domain:         %s\n", urls.RestDomain)
			fmt.Printf("System domain:       %s\n", urls.SystemDomain)
			fmt.Printf("Web services domain: %s\n", urls.WebservicesDomain)
			return nil
		},
	}
}

func getListCmd() *cobra.Command {
	var (
		internalIDs []string
		externalIDs []string
		fields      []string
	)

	cmd := &cobra.Command{
		Use:   "get-list <record-type>",
		Short: "Fetch records by internal or external id",
		Long: "Fetch one or more records of a type (e.g. customer, salesOrder, inventoryItem)\n" +
			"by internal or external id. Use --field to print named body fields.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := newClient(cmd)
			if err != nil {
				return err
			}
			defer c.Close()

			ctx, cancel := commandContext()
			defer cancel()

			records, err := c.GetList(ctx, args[0], internalIDs, externalIDs)
			if err != nil {
				return err
			}

			for _, rec := range records {
				line := fmt.Sprintf("%s internalId=%s", rec.Type(), rec.InternalID())
				if ext := rec.ExternalID(); ext != "" {
					line += " externalId=" + ext
				}
				for _, f := range fields {
					line += fmt.Sprintf(" %s=%q", f, rec.Text(f))
				}
				fmt.Println(line)
			}
			return nil
		},
	}

	cmd.Flags().StringSliceVar(&internalIDs, "id", nil, "internal id (repeatable)")
	cmd.Flags().StringSliceVar(&externalIDs, "external-id", nil, "external id (repeatable)")
	cmd.Flags().StringSliceVar(&fields, "field", nil, "body field to print (repeatable)")

	return cmd
}

func itemAvailabilityCmd() *cobra.Command {
	var (
		internalIDs []string
		externalIDs []string
	)

	cmd := &cobra.Command{
		Use:   "item-availability",
		Short: "Show per-location availability for inventory items",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := newClient(cmd)
			if err != nil {
				return err
			}
			defer c.Close()

			ctx, cancel := commandContext()
			defer cancel()

			rows, err := c.GetItemAvailability(ctx, internalIDs, externalIDs)
			if err != nil {
				return err
			}
			if len(rows) == 0 {
				fmt.Println("No availability data.")
				return nil
			}

			for _, row := range rows {
				fmt.Printf("%s @ %s\n", refLabel(row.Item), refLabel(row.Location))
				fmt.Printf("  on hand %s, available %s, committed %s, on order %s, back ordered %s\n",
					row.QuantityOnHand, row.QuantityAvailable, row.QuantityCommitted,
					row.QuantityOnOrder, row.QuantityBackOrdered)
				if !row.LastQtyAvailableChange.IsZero() {
					fmt.Printf("  last change %s\n", row.LastQtyAvailableChange.Format(time.RFC3339))
				}
			}
			return nil
		},
	}

	cmd.Flags().StringSliceVar(&internalIDs, "id", nil, "inventory item internal id (repeatable)")
	cmd.Flags().StringSliceVar(&externalIDs, "external-id", nil, "inventory item external id (repeatable)")

	return cmd
}

// refLabel prefers the display name, falling back to whichever id the
// server sent.
func refLabel(ref netsuite.Reference) string {
	switch {
	case ref.Name != "":
		return ref.Name
	case ref.InternalID != "":
		return ref.InternalID
	default:
		return ref.ExternalID
	}
}
