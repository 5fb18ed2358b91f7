package main

import (
	"github.com/spf13/cobra"

	"github.com/kyu49/euonymus/internal/publish"
)

func publishCmd(flags *globalFlags) *cobra.Command {
	var bucket, key string

	cmd := &cobra.Command{
		Use:   "publish",
		Short: "Upload the rendered page to S3",
		Long: `Render the demo page and upload it as an HTML object.

Credentials are read from AWS_ACCESS_KEY_ID, AWS_SECRET_ACCESS_KEY and
AWS_SESSION_TOKEN. Set publish.endpoint in the config for S3-compatible
stores.

Examples:
  euonymus publish --bucket=snapshots
  euonymus publish --bucket=snapshots --key=demo/index.html`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := flags.load()
			if err != nil {
				return err
			}
			if bucket != "" {
				cfg.Publish.Bucket = bucket
			}
			if key != "" {
				cfg.Publish.Key = key
			}

			logger := flags.logger(cmd.ErrOrStderr())
			page, err := snapshot(cfg, logger)
			if err != nil {
				return err
			}
			p := publish.New(publish.NewClient(cfg.Publish), cfg.Publish, logger)
			res, err := p.Publish(cmd.Context(), page)
			if err != nil {
				return err
			}
			success(cmd.ErrOrStderr(), "Published s3://%s/%s", res.Bucket, res.Key)
			return nil
		},
	}

	cmd.Flags().StringVar(&bucket, "bucket", "", "Target bucket (default from config)")
	cmd.Flags().StringVar(&key, "key", "", "Object key (default from config)")
	return cmd
}
