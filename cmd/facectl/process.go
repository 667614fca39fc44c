package main

import (
	"context"
	"fmt"
	"io"
	"os"

	facesService "FaceReporter/internal/api/faces/service"
	"FaceReporter/internal/config"
	"FaceReporter/internal/entity"
	"FaceReporter/pkg/awssession"
	contextPkg "FaceReporter/pkg/context"
	"FaceReporter/pkg/log"
	"FaceReporter/pkg/rekognition"
	"FaceReporter/pkg/s3"
	"FaceReporter/pkg/slack"

	jsoniter "github.com/json-iterator/go"
	"github.com/spf13/cobra"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

var payloadPath string

var processCmd = &cobra.Command{
	Use:   "process",
	Short: "Process one uploaded file from a JSON payload",
	Long: `Reads a {"channel","ts","file"} payload, the same shape the Slack
webhook dispatches, and runs the face pipeline on it synchronously.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		payload, err := readPayload(payloadPath, cmd.InOrStdin())
		if err != nil {
			return err
		}

		cfg, err := config.LoadAppConfig(configFile)
		if err != nil {
			return err
		}

		logger := log.NewLogger(log.Options{Level: cfg.App.LogLevel, Env: cfg.App.Env, NoFile: true})

		sess, err := awssession.New(awssession.Config{
			Region:          cfg.AWS.Region,
			AccessKeyID:     cfg.AWS.AccessKeyID,
			SecretAccessKey: cfg.AWS.SecretAccessKey,
		})
		if err != nil {
			return fmt.Errorf("create AWS session: %w", err)
		}
		store, err := s3.New(sess, cfg.AWS.BucketName)
		if err != nil {
			return fmt.Errorf("create S3 client: %w", err)
		}

		svc := facesService.NewFacesService(
			logger,
			slack.New(cfg.Slack.AccessToken, cfg.Slack.APIURL, nil, cfg.Pipeline.MaxFileSize),
			rekognition.New(sess),
			store,
			config.PipelineConfig(cfg),
		)

		ctx := cmd.Context()
		if cfg.Pipeline.Timeout > 0 {
			var cancel context.CancelFunc
			ctx, cancel = context.WithTimeout(ctx, cfg.Pipeline.Timeout)
			defer cancel()
		}

		return runProcess(ctx, svc, payload, cmd.OutOrStdout())
	},
}

func readPayload(path string, stdin io.Reader) ([]byte, error) {
	if path == "" || path == "-" {
		return io.ReadAll(stdin)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read payload: %w", err)
	}
	return data, nil
}

func runProcess(ctx context.Context, svc facesService.IFacesService, payload []byte, out io.Writer) error {
	var job entity.FileJob
	if err := json.Unmarshal(payload, &job); err != nil {
		return fmt.Errorf("parse payload: %w", err)
	}
	if err := config.NewValidator().Struct(job); err != nil {
		return fmt.Errorf("invalid payload: %w", err)
	}

	ctx = contextPkg.WithRequestID(ctx, "facectl-"+job.File.ID)
	result, err := svc.ProcessFile(ctx, job)
	if err != nil {
		return err
	}

	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(result)
}

func init() {
	processCmd.Flags().StringVarP(&payloadPath, "payload", "p", "", "payload file, - or empty for stdin")
	rootCmd.AddCommand(processCmd)
}
