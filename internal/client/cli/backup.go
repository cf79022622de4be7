package cli

import (
	"context"
	"fmt"
)

func (a *App) backupToCloud(ctx context.Context) {
	res := a.backup.BackupToCloud(ctx)
	if !res.Success {
		fmt.Println("Error:", res.Message)
		return
	}
	fmt.Printf("%s (%d KB)\n", res.Message, res.SizeKB)
}

func (a *App) restoreFromCloud(ctx context.Context) {
	res := a.backup.RestoreFromCloud(ctx)
	if !res.Success {
		fmt.Println("Error:", res.Message)
		return
	}
	fmt.Println(res.Message)
}

func (a *App) backupInfo(ctx context.Context) {
	info := a.backup.GetBackupInfo(ctx)
	if !info.Exists {
		fmt.Println("No backup found in cloud storage")
		return
	}
	fmt.Printf("Backup: %d bytes, last modified %s\n", info.SizeBytes, info.LastModified)
}
