package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/kmalloy/staylist/internal/display"
	"github.com/kmalloy/staylist/internal/pricing"
	"github.com/kmalloy/staylist/internal/schedule"
)

func newScheduleCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "schedule",
		Short: "Show or change your planned stay dates",
		Long:  "Show the stay dates used for pricing. Stays of 7+ nights earn a weekly discount and 30+ nights a monthly discount.",
		RunE:  runScheduleShow,
	}
	cmd.AddCommand(newScheduleSetCmd(), newScheduleClearCmd())
	return cmd
}

func newScheduleSetCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "set",
		Short: "Set check-in and check-out dates",
		RunE:  runScheduleSet,
	}
	cmd.Flags().String("check-in", "", "check-in date (YYYY-MM-DD)")
	cmd.Flags().String("check-out", "", "check-out date (YYYY-MM-DD)")
	return cmd
}

func newScheduleClearCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Reset stay dates to the default one-night stay",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := clearSchedule(); err != nil {
				return err
			}
			fmt.Println("Stay dates cleared.")
			return nil
		},
	}
}

func runScheduleShow(cmd *cobra.Command, args []string) error {
	sel := loadSchedule()

	if isJSON() {
		return printJSON(map[string]interface{}{
			"check_in":         sel.CheckIn.Format(dayFormat),
			"check_out":        sel.CheckOut.Format(dayFormat),
			"nights":           sel.Nights,
			"discount_percent": pricing.DiscountPercent(sel.Nights),
		})
	}

	printSchedule(sel)
	return nil
}

func runScheduleSet(cmd *cobra.Command, args []string) error {
	sel := loadSchedule()

	if v, _ := cmd.Flags().GetString("check-in"); v != "" {
		checkIn, err := time.Parse(dayFormat, v)
		if err != nil {
			return fmt.Errorf("invalid --check-in %q: use YYYY-MM-DD", v)
		}
		sel.SetCheckIn(checkIn)
	}

	if v, _ := cmd.Flags().GetString("check-out"); v != "" {
		checkOut, err := time.Parse(dayFormat, v)
		if err != nil {
			return fmt.Errorf("invalid --check-out %q: use YYYY-MM-DD", v)
		}
		if err := sel.SetCheckOut(checkOut); err != nil {
			return err
		}
	}

	if err := saveSchedule(sel); err != nil {
		return err
	}

	printSchedule(sel)
	return nil
}

func printSchedule(sel schedule.Selection) {
	fmt.Printf("Check-in:  %s\n", display.Date(sel.CheckIn))
	fmt.Printf("Check-out: %s\n", display.Date(sel.CheckOut))

	noun := "nights"
	if sel.Nights == 1 {
		noun = "night"
	}
	fmt.Printf("Stay:      %d %s\n", sel.Nights, noun)

	if pct := pricing.DiscountPercent(sel.Nights); pct > 0 {
		fmt.Printf("Discount:  %d%% off nightly rates\n", pct)
	}
}
