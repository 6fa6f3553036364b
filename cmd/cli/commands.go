package main

import (
	"errors"
	"fmt"

	"github.com/limaJavier/handbook/internal/server"
	"github.com/limaJavier/handbook/pkg/requirements"
	"github.com/spf13/cobra"
)

var errNotFound = errors.New("not found in catalog")

var (
	specs []string
	taken []string
	wam   int
)

var courseCmd = &cobra.Command{
	Use:   "course CODE",
	Short: "Shows a course with its rendered conditions",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		book, err := loadHandbook()
		if err != nil {
			return err
		}
		info := book.CourseInfo(args[0])
		if info == nil {
			return fmt.Errorf("course %v %w", args[0], errNotFound)
		}
		return writeOutput(info)
	},
}

var programCmd = &cobra.Command{
	Use:   "program CODE",
	Short: "Shows a program with its structure",
	Long: `Shows a program with its summary structure. With --expand the specialisations are expanded
into their curriculum blocks; repeating --spec restricts the expansion to the given specialisations`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		book, err := loadHandbook()
		if err != nil {
			return err
		}

		expand, _ := cmd.Flags().GetBool("expand")
		info := book.ProgramInfo(args[0])
		if cmd.Flags().Changed("spec") {
			info = book.ProgramAndSpecInfo(args[0], specs)
		} else if expand {
			info = book.ProgramAndSpecInfo(args[0], nil)
		}
		if info == nil {
			return fmt.Errorf("program %v %w", args[0], errNotFound)
		}
		return writeOutput(info)
	},
}

var poolCmd = &cobra.Command{
	Use:   "pool CODE",
	Short: "Lists every catalog course reachable from a program",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		book, err := loadHandbook()
		if err != nil {
			return err
		}
		courses := book.ProgramCourseCodes(args[0])
		if courses == nil {
			return fmt.Errorf("program %v %w", args[0], errNotFound)
		}
		return writeOutput(courses)
	},
}

var eligibleCmd = &cobra.Command{
	Use:   "eligible CODE",
	Short: "Lists the program's courses a student can enrol in",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var studentWAM *uint8
		if cmd.Flags().Changed("wam") {
			if wam < 0 || wam > 100 {
				return fmt.Errorf("wam must be between 0 and 100: %v", wam)
			}
			value := uint8(wam)
			studentWAM = &value
		}

		book, err := loadHandbook()
		if err != nil {
			return err
		}
		courses := book.EligibleCourses(args[0], taken, studentWAM)
		if courses == nil {
			return fmt.Errorf("program %v %w", args[0], errNotFound)
		}
		return writeOutput(courses)
	},
}

var progressCmd = &cobra.Command{
	Use:   "progress CODE",
	Short: "Maps taken courses onto a program's structure",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		book, err := loadHandbook()
		if err != nil {
			return err
		}
		progress := book.Progress(args[0], specs, taken)
		if progress == nil {
			return fmt.Errorf("progress for program %v is unavailable", args[0])
		}
		return writeOutput(progress)
	},
}

var parseCmd = &cobra.Command{
	Use:   "parse TEXT",
	Short: "Shows how a requirement text is understood",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		parsed, err := requirements.New(args[0])
		if err != nil {
			return err
		}
		fmt.Println(parsed.String())
		return nil
	},
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Runs the api service",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if address, _ := cmd.Flags().GetString("address"); address != "" {
			settings.Address = address
		}
		book, err := loadHandbook()
		if err != nil {
			return err
		}
		return server.Serve(cmd.Context(), book, settings)
	},
}

func init() {
	programCmd.Flags().StringArrayVar(&specs, "spec", nil, "Specialisation to expand (repeatable)")
	programCmd.Flags().Bool("expand", false, "Expand every specialisation of the program")

	eligibleCmd.Flags().StringSliceVar(&taken, "taken", nil, "Comma-separated list of taken courses")
	eligibleCmd.Flags().IntVar(&wam, "wam", 0, "Weighted average mark of the student")

	progressCmd.Flags().StringArrayVar(&specs, "spec", nil, "Chosen specialisation (repeatable)")
	progressCmd.Flags().StringSliceVar(&taken, "taken", nil, "Comma-separated list of taken courses")

	serveCmd.Flags().String("address", "", "Address to listen on, overrides the configuration")

	rootCmd.AddCommand(courseCmd, programCmd, poolCmd, eligibleCmd, progressCmd, parseCmd, serveCmd)
}
