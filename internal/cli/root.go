package cli

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/mergekit/mergemail/internal/config"
	"github.com/mergekit/mergemail/pkg/campaign"
	"github.com/mergekit/mergemail/pkg/logger"
	"github.com/mergekit/mergemail/pkg/mailer"
	"github.com/mergekit/mergemail/pkg/mailer/gmail"
	"github.com/mergekit/mergemail/pkg/mailer/resend"
	"github.com/mergekit/mergemail/pkg/oauth"
	"github.com/mergekit/mergemail/pkg/recipients"
)

type runOptions struct {
	csvPath      string
	templatePath string
	delay        float64
	cc           []string
	provider     string
	campaignFile string
}

// Execute runs the CLI. Fatal errors (bad input files, failed
// authorization) exit non-zero; individual send failures do not.
func Execute() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var opts runOptions

	cmd := &cobra.Command{
		Use:   "mergemail",
		Short: "Send personalized mail-merge emails from a CSV",
		Long: `mergemail reads recipients from a CSV file, fills $variables in a
plain-text template (line 1 = subject, rest = body), and sends one
message per recipient through Gmail or Resend. Every attempt is logged;
successful sends are appended to a results CSV.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return run(cmd.Context(), opts)
		},
	}

	cmd.Flags().StringVar(&opts.csvPath, "csv", "", "recipients CSV file (must contain an 'email' column)")
	cmd.Flags().StringVar(&opts.templatePath, "template", "", "message template file (line 1 = subject)")
	cmd.Flags().Float64Var(&opts.delay, "delay", 0, "seconds to wait between sends")
	cmd.Flags().StringSliceVar(&opts.cc, "cc", nil, "CC address added to every message (repeatable)")
	cmd.Flags().StringVar(&opts.provider, "provider", "", "delivery provider: gmail or resend")
	cmd.Flags().StringVar(&opts.campaignFile, "config", "", "optional campaign YAML file")

	_ = cmd.MarkFlagRequired("csv")
	_ = cmd.MarkFlagRequired("template")

	return cmd
}

func run(ctx context.Context, opts runOptions) error {
	if opts.delay < 0 {
		return errors.New("cli: --delay must be non-negative")
	}

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	if opts.campaignFile != "" {
		cf, err := config.LoadCampaignFile(opts.campaignFile)
		if err != nil {
			return err
		}
		if opts.delay == 0 {
			opts.delay = cf.Delay
		}
		if len(opts.cc) == 0 {
			opts.cc = cf.CC
		}
		if cf.From.Email != "" {
			cfg.Gmail.SenderEmail = cf.From.Email
			cfg.Resend.SenderEmail = cf.From.Email
		}
		if cf.From.Name != "" {
			cfg.Gmail.SenderName = cf.From.Name
			cfg.Resend.SenderName = cf.From.Name
		}
	}
	if opts.provider != "" {
		cfg.Provider = opts.provider
	}

	// Input validation happens before anything touches the network or
	// the output files, so bad inputs abort with nothing written.
	tmpl, err := mailer.LoadTemplate(opts.templatePath)
	if err != nil {
		return err
	}

	recs, err := recipients.Open(opts.csvPath)
	if err != nil {
		return err
	}
	defer recs.Close()

	log := logger.NewWithSentry(cfg.Sentry, campaign.RunIDExtractor())

	// Output files are opened before authorization so they exist and
	// close cleanly even when the consent flow fails.
	recorder, err := campaign.NewFileRecorder(cfg.LogFile, cfg.SentFile)
	if err != nil {
		return err
	}
	defer recorder.Close()

	sender, err := newSender(ctx, cfg)
	if err != nil {
		return err
	}

	c := campaign.New(sender, mailer.NewRenderer(), recorder,
		campaign.WithLogger(log),
		campaign.WithDelay(time.Duration(opts.delay*float64(time.Second))),
		campaign.WithCC(opts.cc),
	)

	sum, err := c.Run(ctx, tmpl, recs)
	if err != nil {
		return err
	}

	log.InfoContext(campaign.WithRunID(ctx, sum.RunID), "done",
		slog.Int("sent", sum.Sent),
		slog.Int("failed", sum.Failed))
	return nil
}

// newSender builds the delivery backend. The Gmail path acquires the
// credential here, once, before the first recipient is touched.
func newSender(ctx context.Context, cfg *config.Config) (mailer.Sender, error) {
	switch cfg.Provider {
	case "gmail":
		auth, err := oauth.NewGoogleAuthorizer(cfg.Google)
		if err != nil {
			return nil, err
		}
		client, err := auth.Client(ctx)
		if err != nil {
			return nil, err
		}
		return gmail.New(client, cfg.Gmail), nil
	case "resend":
		if cfg.Resend.APIKey == "" {
			return nil, errors.New("cli: RESEND_API_KEY is required for the resend provider")
		}
		return resend.New(cfg.Resend), nil
	default:
		return nil, fmt.Errorf("cli: unknown provider %q", cfg.Provider)
	}
}
