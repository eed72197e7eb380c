package service

import (
	"context"

	"github.com/taskchainhq/taskchain/internal/repository"
)

type timelineService struct {
	projects repository.ProjectRepo
	tasks    repository.TaskRepo
}

func NewTimelineService(projects repository.ProjectRepo, tasks repository.TaskRepo) TimelineService {
	return &timelineService{projects: projects, tasks: tasks}
}

func (s *timelineService) Timeline(ctx context.Context) ([]TimelineEntry, error) {
	projects, err := s.projects.List(ctx)
	if err != nil {
		return nil, err
	}

	var entries []TimelineEntry
	for _, p := range projects {
		chain, err := s.tasks.ListByProject(ctx, p.ID)
		if err != nil {
			return nil, err
		}
		if len(chain) == 0 {
			entries = append(entries, TimelineEntry{Project: p})
			continue
		}
		for _, t := range chain {
			entries = append(entries, TimelineEntry{Project: p, Task: t})
		}
	}
	return entries, nil
}
