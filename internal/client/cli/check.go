package cli

import (
	"context"
	"fmt"
	"os"
	"strings"
)

func (a *App) checkInteractions(ctx context.Context, args []string) {

	var drugName string
	var err error

	if len(args) > 0 {
		drugName = strings.Join(args, " ")
	} else {
		drugName, err = GetSimpleText(a.reader, "Drug to check against your medications", os.Stdout)
		if err != nil {
			fmt.Println("Error:", err)
			return
		}
	}

	results, err := a.interactions.CheckInteractions(ctx, drugName)
	if err != nil {
		fmt.Println("Error:", err)
		return
	}
	if len(results) == 0 {
		fmt.Println("No saved medications to check against")
		return
	}

	for _, r := range results {
		fmt.Printf("%-10s %s\n  %s\n", strings.ToUpper(string(r.Interaction)), r.DrugName, r.Details)
	}
}
