package service

import (
	"github.com/gridplace-dev/gridplace/internal/domain"
)

type ContributionService interface {
	List(boardId domain.BoardId) ([]domain.Contributor, error)
}

type Contribution struct {
	storage ContributionStorage
	boards  BoardGetter
}

type ContributionStorage interface {
	ListContributors(boardId domain.BoardId) ([]domain.Contributor, error)
}

func NewContribution(storage ContributionStorage, boards BoardGetter) *Contribution {
	return &Contribution{storage, boards}
}

// List returns the board leaderboard, pixels descending.
func (c *Contribution) List(boardId domain.BoardId) ([]domain.Contributor, error) {
	if _, err := c.boards.GetBoard(boardId); err != nil {
		return nil, err
	}
	return c.storage.ListContributors(boardId)
}
