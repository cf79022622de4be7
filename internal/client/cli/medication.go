package cli

import (
	"context"
	"fmt"
	"os"
	"strings"
)

func (a *App) addMedication(ctx context.Context) {

	name, err := GetSimpleText(a.reader, "Medication name", os.Stdout)
	if err != nil {
		fmt.Println("Error:", err)
		return
	}
	dosage, err := GetSimpleText(a.reader, "Dosage (e.g. 100mg)", os.Stdout)
	if err != nil {
		fmt.Println("Error:", err)
		return
	}
	timeOfDay, err := GetSimpleText(a.reader, "Time of day (e.g. morning)", os.Stdout)
	if err != nil {
		fmt.Println("Error:", err)
		return
	}

	med, err := a.meds.SaveMedication(ctx, name, dosage, timeOfDay)
	if err != nil {
		fmt.Println("Error:", err)
		return
	}

	fmt.Printf("Added %s (%s, %s) id=%s\n", med.Name, med.Dosage, med.TimeOfDay, med.ID)
}

func (a *App) listMedications(ctx context.Context) {
	list := a.meds.GetMedications(ctx)
	if len(list) == 0 {
		fmt.Println("No medications saved")
		return
	}

	for _, med := range list {
		mark := " "
		if a.meds.IsMedicationTakenToday(ctx, med.ID) {
			mark = "x"
		}
		fmt.Printf("[%s] %s  %s, %s  id=%s\n", mark, med.Name, med.Dosage, med.TimeOfDay, med.ID)
	}
}

// resolveMedicationID accepts either a medication id or a name (exact,
// case-insensitive) and returns the id.
func (a *App) resolveMedicationID(ctx context.Context, ref string) (string, bool) {
	for _, med := range a.meds.GetMedications(ctx) {
		if med.ID == ref || strings.EqualFold(med.Name, ref) {
			return med.ID, true
		}
	}
	return "", false
}

func (a *App) markStatus(ctx context.Context, args []string, taken bool) {
	if len(args) == 0 {
		fmt.Println("Usage: take|skip <medication name or id>")
		return
	}
	ref := strings.Join(args, " ")

	id, ok := a.resolveMedicationID(ctx, ref)
	if !ok {
		fmt.Printf("No medication matches %q\n", ref)
		return
	}

	if err := a.meds.UpdateMedicationStatus(ctx, id, taken); err != nil {
		fmt.Println("Error:", err)
		return
	}
	if taken {
		fmt.Println("Marked as taken for today")
	} else {
		fmt.Println("Marked as skipped for today")
	}
}

func (a *App) deleteMedication(ctx context.Context, args []string) {
	if len(args) == 0 {
		fmt.Println("Usage: delete <medication name or id>")
		return
	}
	ref := strings.Join(args, " ")

	id, ok := a.resolveMedicationID(ctx, ref)
	if !ok {
		fmt.Printf("No medication matches %q\n", ref)
		return
	}

	if err := a.meds.DeleteMedication(ctx, id); err != nil {
		fmt.Println("Error:", err)
		return
	}
	fmt.Println("Deleted")
}
