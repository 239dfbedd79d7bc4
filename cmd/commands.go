package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/davidbz/fitforge/internal/coach"
	"github.com/davidbz/fitforge/internal/domain"
	"github.com/davidbz/fitforge/internal/http"
)

const shutdownTimeout = 15 * time.Second

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:          "fitforge",
		Short:        "fitforge builds workout plans and nutrition targets with a generation endpoint",
		SilenceUsage: true,
	}

	root.AddCommand(serveCmd())
	root.AddCommand(workoutCmd())
	root.AddCommand(nutritionCmd())
	root.AddCommand(macrosCmd())
	root.AddCommand(chatCmd())

	return root
}

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return buildContainer().Invoke(func(server *http.Server, svc *coach.Service, stores *backends) error {
				defer stores.Close()

				ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
				defer stop()

				errCh := make(chan error, 1)
				go func() { errCh <- server.Start() }()

				select {
				case err := <-errCh:
					return err
				case <-ctx.Done():
				}

				shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
				defer cancel()

				err := server.Shutdown(shutdownCtx)
				svc.Wait()
				return err
			})
		},
	}
}

// readinessFlags registers the optional readiness override shared by every one-shot command.
type readinessFlags struct {
	level string
	note  string
}

func (f *readinessFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.level, "readiness", "", "today's readiness level (low, medium, high)")
	cmd.Flags().StringVar(&f.note, "readiness-note", "", "short readiness descriptor")
}

func (f *readinessFlags) context() *domain.ReadinessContext {
	if strings.TrimSpace(f.level) == "" {
		return nil
	}
	return &domain.ReadinessContext{
		Level:      domain.ParseReadinessLevel(f.level),
		Descriptor: f.note,
	}
}

func workoutCmd() *cobra.Command {
	var (
		params     coach.WorkoutParams
		difficulty string
		rf         readinessFlags
	)

	cmd := &cobra.Command{
		Use:   "workout",
		Short: "Generate a workout plan",
		RunE: func(cmd *cobra.Command, _ []string) error {
			params.Difficulty = domain.Difficulty(strings.ToLower(difficulty))
			params.Readiness = rf.context()

			return withService(func(svc *coach.Service) error {
				return printJSON(cmd.OutOrStdout(), svc.GenerateWorkoutPlan(cmd.Context(), params))
			})
		},
	}

	cmd.Flags().StringSliceVar(&params.Goals, "goal", nil, "training goal (repeatable)")
	cmd.Flags().StringSliceVar(&params.Restrictions, "restriction", nil, "injury or restriction (repeatable)")
	cmd.Flags().StringVar(&difficulty, "difficulty", string(domain.DifficultyIntermediate), "beginner, intermediate or advanced")
	cmd.Flags().IntVar(&params.DurationMinutes, "duration", 30, "session length in minutes")
	cmd.Flags().StringVar(&params.Category, "category", "", "session category, e.g. strength or cardio")
	cmd.Flags().StringSliceVar(&params.Equipment, "equipment", nil, "available equipment (repeatable)")
	rf.register(cmd)

	return cmd
}

func nutritionCmd() *cobra.Command {
	var (
		params coach.NutritionParams
		body   domain.BodyStats
		sex    string
		level  string
		rf     readinessFlags
	)

	cmd := &cobra.Command{
		Use:   "nutrition",
		Short: "Compute daily nutrition targets",
		RunE: func(cmd *cobra.Command, _ []string) error {
			body.Sex = domain.Sex(strings.ToLower(sex))
			body.Activity = domain.ActivityLevel(strings.ToLower(level))
			if body.WeightKg > 0 || body.HeightCm > 0 || body.Age > 0 {
				params.Body = &body
			}
			params.Readiness = rf.context()

			return withService(func(svc *coach.Service) error {
				return printJSON(cmd.OutOrStdout(), svc.ComputeNutritionTargets(cmd.Context(), params))
			})
		},
	}

	cmd.Flags().StringSliceVar(&params.Goals, "goal", nil, "nutrition goal (repeatable)")
	cmd.Flags().StringSliceVar(&params.Restrictions, "restriction", nil, "dietary restriction (repeatable)")
	cmd.Flags().Float64Var(&body.WeightKg, "weight", 0, "body weight in kg")
	cmd.Flags().Float64Var(&body.HeightCm, "height", 0, "height in cm")
	cmd.Flags().IntVar(&body.Age, "age", 0, "age in years")
	cmd.Flags().StringVar(&sex, "sex", "", "male or female")
	cmd.Flags().StringVar(&level, "activity", "", "sedentary, light, moderate, active or very_active")
	rf.register(cmd)

	return cmd
}

func macrosCmd() *cobra.Command {
	var (
		params coach.MacroParams
		rf     readinessFlags
	)

	cmd := &cobra.Command{
		Use:   "macros",
		Short: "Suggest a macro split for a calorie figure",
		RunE: func(cmd *cobra.Command, _ []string) error {
			params.Readiness = rf.context()

			return withService(func(svc *coach.Service) error {
				split, err := svc.SuggestMacroSplit(cmd.Context(), params)
				if err != nil {
					return err
				}
				return printJSON(cmd.OutOrStdout(), split)
			})
		},
	}

	cmd.Flags().IntVar(&params.Calories, "calories", 0, "daily calories (default 2200)")
	cmd.Flags().StringVar(&params.Preset, "preset", "balanced", "balanced, keto or high_protein")
	cmd.Flags().StringSliceVar(&params.Goals, "goal", nil, "nutrition goal (repeatable)")
	rf.register(cmd)

	return cmd
}

func chatCmd() *cobra.Command {
	var (
		params coach.ChatParams
		rf     readinessFlags
	)

	cmd := &cobra.Command{
		Use:   "chat <message>",
		Short: "Ask the coach a free-text question",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			params.Message = strings.Join(args, " ")
			params.Readiness = rf.context()

			return withService(func(svc *coach.Service) error {
				_, err := fmt.Fprintln(cmd.OutOrStdout(), svc.Chat(cmd.Context(), params))
				return err
			})
		},
	}

	cmd.Flags().StringSliceVar(&params.Goals, "goal", nil, "training goal (repeatable)")
	rf.register(cmd)

	return cmd
}

// withService runs fn against a fully wired service and waits for its reward effects before
// releasing connections.
func withService(fn func(*coach.Service) error) error {
	return buildContainer().Invoke(func(svc *coach.Service, stores *backends) error {
		defer stores.Close()
		defer svc.Wait()
		return fn(svc)
	})
}

func printJSON(w io.Writer, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("encode result: %w", err)
	}
	_, err = fmt.Fprintln(w, string(data))
	return err
}
