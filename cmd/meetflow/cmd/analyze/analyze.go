package analyze

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"meetflow/internal/app"
	"meetflow/internal/app/model"
	"meetflow/internal/app/pipeline"
	"meetflow/internal/app/temporal/pkg/command"
	"meetflow/internal/app/temporal/pkg/common"
	"meetflow/internal/app/temporal/workflows"
	"meetflow/internal/app/transcriber/whisper"
	"meetflow/internal/config"
)

var (
	modelSize  string
	language   string
	title      string
	noAnalysis bool
	jsonOut    bool
	remote     bool
	detach     bool
	force      bool
)

func init() {
	Cmd.Flags().StringVarP(&modelSize, "model", "m", "",
		"whisper model size (tiny, base or small), defaults to the configured size")
	Cmd.Flags().StringVarP(&language, "language", "l", "",
		"spoken language hint, e.g. en, defaults to auto-detect")
	Cmd.Flags().StringVarP(&title, "title", "t", "",
		"meeting title, defaults to the file name")
	Cmd.Flags().BoolVar(&noAnalysis, "no-analysis", false, "stop after transcription")
	Cmd.Flags().BoolVar(&jsonOut, "json", false, "print results as JSON")
	Cmd.Flags().BoolVar(&remote, "remote", false,
		"submit to the Temporal pipeline instead of processing in-process")
	Cmd.Flags().BoolVar(&detach, "detach", false,
		"with --remote, submit the workflow and exit without waiting")
	Cmd.Flags().BoolVar(&force, "force", false,
		"re-process files that already have a stored meeting")
}

// Cmd represents the analyze command
var Cmd = &cobra.Command{
	Use:   "analyze [audio-file]...",
	Short: "Transcribe and analyze meeting recordings",
	Long: `Transcribe and analyze meeting recordings.

- Each file is transcribed locally with whisper.cpp
- The transcript is summarized by a hosted LLM, action items included
- Files whose audio was processed before are skipped unless --force is set`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if modelSize != "" && !whisper.IsValidSize(modelSize) {
			return fmt.Errorf("unknown model size %q, expected tiny, base or small", modelSize)
		}

		ctx := cmd.Context()
		if remote {
			return runRemote(ctx, args)
		}
		return runLocal(ctx, args)
	},
}

func runLocal(ctx context.Context, paths []string) error {
	settings, err := config.LoadSettings("")
	if err != nil {
		return err
	}
	if modelSize != "" {
		settings.Whisper.ModelSize = modelSize
	}
	if language != "" {
		settings.Whisper.Language = language
	}

	runner, cleanup, err := app.InitializePipeline(settings)
	if err != nil {
		return err
	}
	defer cleanup()

	for _, path := range paths {
		meeting, err := runner.ProcessFile(ctx, path, pipeline.Options{
			Title:         title,
			ModelSize:     modelSize,
			Language:      language,
			SkipAnalysis:  noAnalysis,
			SkipProcessed: !force,
		})
		if errors.Is(err, pipeline.ErrAlreadyProcessed) {
			fmt.Printf("%s already processed as meeting %s, use --force to redo\n",
				filepath.Base(path), meeting.ID)
			continue
		}
		if err != nil {
			return fmt.Errorf("%s: %w", filepath.Base(path), err)
		}

		if jsonOut {
			out, err := json.MarshalIndent(meeting, "", "  ")
			if err != nil {
				return err
			}
			fmt.Println(string(out))
			continue
		}
		printMeeting(meeting)
	}
	return nil
}

func runRemote(ctx context.Context, paths []string) error {
	cfg := common.DefaultTemporalConfig()
	c, err := command.NewPipelineClient(cfg)
	if err != nil {
		return err
	}
	defer c.Close()

	for _, path := range paths {
		// The worker reads the file itself, so the path must survive
		// leaving this process.
		abs, err := filepath.Abs(path)
		if err != nil {
			return err
		}

		req := workflows.MeetingPipelineRequest{
			AudioPath:    abs,
			Title:        title,
			ModelSize:    modelSize,
			Language:     language,
			SkipAnalysis: noAnalysis,
		}

		if detach {
			workflowID, err := command.SubmitMeeting(ctx, c, cfg, req)
			if err != nil {
				return fmt.Errorf("%s: %w", filepath.Base(path), err)
			}
			fmt.Printf("%s submitted as workflow %s\n", filepath.Base(abs), workflowID)
			continue
		}

		result, err := command.RunMeeting(ctx, c, cfg, req, func(elapsed time.Duration) {
			fmt.Printf("  %s still running after %s\n", filepath.Base(abs), elapsed.Round(time.Second))
		})
		if err != nil {
			return fmt.Errorf("%s: %w", filepath.Base(path), err)
		}

		if jsonOut {
			out, err := json.MarshalIndent(result, "", "  ")
			if err != nil {
				return err
			}
			fmt.Println(string(out))
			continue
		}
		fmt.Printf("%s  [%s]  meeting %s in %s\n", filepath.Base(abs),
			result.Status, result.MeetingID, result.ProcessingTime.Round(time.Second))
	}
	return nil
}

func printMeeting(meeting *model.Meeting) {
	fmt.Printf("%s  [%s]\n", meeting.Title, meeting.Status)
	fmt.Printf("  id: %s  language: %s  duration: %.0fs  model: %s\n",
		meeting.ID, meeting.Language, meeting.DurationSec, meeting.ModelSize)
	if meeting.Summary != "" {
		fmt.Printf("  summary: %s\n", meeting.Summary)
	}
	for _, item := range meeting.ActionItems {
		fmt.Printf("  - %s (%s)\n", item.Task, item.Owner)
	}
	if meeting.ErrorDetail != "" {
		fmt.Printf("  note: %s\n", meeting.ErrorDetail)
	}
}
