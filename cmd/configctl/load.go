package main

import (
	"context"
	"fmt"
	"os"

	"model-config-service/internal/adapters/secondary/filesource"
	"model-config-service/internal/core/services"
)

// loadFile activates the document at path in a throwaway config service.
func loadFile(ctx context.Context, path string, allowPartial bool) (*services.Snapshot, error) {
	source := filesource.NewFileSource(path, false)
	data, err := source.Fetch(ctx)
	if err != nil {
		return nil, err
	}

	svc := services.NewConfigService(nil, services.ConfigServiceOptions{AllowPartial: allowPartial})
	snap, issues, err := svc.Load(ctx, data, source.Name())
	if err != nil {
		for _, issue := range issues {
			fmt.Fprintln(os.Stderr, issue.Error())
		}
		return nil, err
	}
	return snap, nil
}
