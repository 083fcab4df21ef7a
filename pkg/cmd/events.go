package cmd

import (
	"fmt"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/yeisme/genomeinsight/pkg/configs"
	"github.com/yeisme/genomeinsight/pkg/internal/storage/mq"
	"github.com/yeisme/genomeinsight/pkg/log"
	"github.com/yeisme/genomeinsight/pkg/queue"
)

var (
	eventsCmd = &cobra.Command{
		Use:   "events",
		Short: "File lifecycle event commands",
	}

	// tail 只对跨进程的 mq（nats）有意义.
	eventsTailCmd = &cobra.Command{
		Use:   "tail",
		Short: "print file lifecycle events as they arrive",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, _, err := configs.Load(configPath)
			if err != nil {
				return err
			}

			log.Init(cfg.Log, debug)

			client, err := mq.New(cmd.Context(), cfg.MQ, mq.Options{})
			if err != nil {
				return err
			}
			defer client.Close()

			g, ctx := errgroup.WithContext(cmd.Context())

			for _, topic := range queue.FileTopics {
				ch, err := client.Subscribe(ctx, topic)
				if err != nil {
					return fmt.Errorf("subscribe %s: %w", topic, err)
				}

				g.Go(func() error {
					for msg := range ch {
						printEvent(cmd, msg)
						msg.Ack()
					}

					return nil
				})
			}

			return g.Wait()
		},
	}
)

func printEvent(cmd *cobra.Command, msg *message.Message) {
	ev, err := queue.Decode[map[string]any](msg.Payload)
	if err != nil {
		log.Logger().Warn().Err(err).Str("uuid", msg.UUID).Msg("undecodable event")
		return
	}

	fmt.Fprintf(cmd.OutOrStdout(), "%s %s %v\n",
		ev.Header.OccurredAt.Format("2006-01-02T15:04:05Z07:00"), ev.Header.Topic, ev.Payload)
}

// registerEventsCommands 注册事件相关命令.
func registerEventsCommands() {
	rootCmd.AddCommand(eventsCmd)

	eventsCmd.AddCommand(eventsTailCmd)
}
