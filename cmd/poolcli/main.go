// poolcli inspects a running pool through its operator RPC service.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/fatih/color"
	"github.com/urfave/cli/v3"

	"github.com/farmpool/poold/rpc"
	"github.com/farmpool/poold/rpc/api"
	"github.com/farmpool/poold/types"
)

var (
	key  = color.New(color.FgCyan).SprintFunc()
	good = color.New(color.FgGreen, color.Bold).SprintFunc()
	bad  = color.New(color.FgRed, color.Bold).SprintFunc()
)

func newApp(out io.Writer) *cli.Command {
	return &cli.Command{
		Name:  "poolcli",
		Usage: "inspect a running pool",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "rpc", Value: "localhost:50002", Usage: "address of the operator RPC service"},
			&cli.DurationFlag{Name: "timeout", Value: 10 * time.Second, Usage: "timeout of a request"},
		},
		Commands: []*cli.Command{
			{
				Name:  "info",
				Usage: "show the pool information served to farmers",
				Action: withClient(func(ctx context.Context, client *rpc.Client, _ *cli.Command) error {
					info, err := client.Info(ctx)
					if err != nil {
						return err
					}
					printInfo(out, info)
					return nil
				}),
			},
			{
				Name:  "status",
				Usage: "show the chain peak and the partials waiting for confirmation",
				Action: withClient(func(ctx context.Context, client *rpc.Client, _ *cli.Command) error {
					status, err := client.Status(ctx)
					if err != nil {
						return err
					}
					printStatus(out, status)
					return nil
				}),
			},
			{
				Name:      "farmer",
				Usage:     "show the record of a farmer",
				ArgsUsage: "<launcher-id>",
				Action: withClient(func(ctx context.Context, client *rpc.Client, cmd *cli.Command) error {
					if cmd.Args().Len() != 1 {
						return errors.New("expected exactly one launcher id")
					}
					launcherID, err := types.Bytes32FromHex(cmd.Args().First())
					if err != nil {
						return fmt.Errorf("invalid launcher id: %w", err)
					}
					farmer, err := client.Farmer(ctx, launcherID)
					if err != nil {
						return err
					}
					printFarmer(out, farmer)
					return nil
				}),
			},
		},
	}
}

func withClient(action func(context.Context, *rpc.Client, *cli.Command) error) cli.ActionFunc {
	return func(ctx context.Context, cmd *cli.Command) error {
		ctx, cancel := context.WithTimeout(ctx, cmd.Duration("timeout"))
		defer cancel()
		client, err := rpc.Dial(ctx, cmd.String("rpc"))
		if err != nil {
			return err
		}
		defer client.Close()
		return action(ctx, client, cmd)
	}
}

func field(out io.Writer, name string, value any) {
	fmt.Fprintf(out, "%-28s %v\n", key(name+":"), value)
}

func printInfo(out io.Writer, info *types.PoolInfo) {
	field(out, "name", info.Name)
	field(out, "description", info.Description)
	field(out, "fee", info.Fee)
	field(out, "minimum difficulty", info.MinimumDifficulty)
	field(out, "relative lock height", info.RelativeLockHeight)
	field(out, "protocol version", info.ProtocolVersion)
	field(out, "target puzzle hash", info.TargetPuzzleHash)
	field(out, "token timeout (minutes)", info.AuthenticationTokenTimeout)
}

func printStatus(out io.Writer, status *api.StatusResponse) {
	field(out, "peak", status.Peak)
	synced := bad("no")
	if status.WalletSynced {
		synced = good("yes")
	}
	field(out, "wallet synced", synced)
	field(out, "pending partials", status.PendingPartials)
	field(out, "update cooldowns", status.Cooldowns)
}

func printFarmer(out io.Writer, farmer *api.FarmerResponse) {
	field(out, "launcher id", farmer.LauncherID)
	member := bad("no")
	if farmer.IsPoolMember {
		member = good("yes")
	}
	field(out, "pool member", member)
	field(out, "pool state", farmer.PoolState)
	field(out, "difficulty", farmer.Difficulty)
	field(out, "points", farmer.Points)
	field(out, "payout instructions", farmer.PayoutInstructions)
	field(out, "p2 singleton puzzle hash", farmer.P2SingletonPuzzleHash)
	field(out, "delay time", time.Duration(farmer.DelayTime)*time.Second)
	field(out, "authentication key", farmer.AuthenticationPublicKey)
	field(out, "owner key", farmer.OwnerPublicKey)
}

func main() {
	if err := newApp(color.Output).Run(context.Background(), os.Args); err != nil {
		fmt.Fprintln(os.Stderr, bad(err))
		os.Exit(1)
	}
}
