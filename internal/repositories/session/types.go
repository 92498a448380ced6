package session

import "github.com/sipcrew/partyround/internal/models"

type SaveSessionInput struct {
	Session *models.Session
}

type GetSessionInput struct {
	Code string
}

type DeleteSessionInput struct {
	Code string
}

type GetActiveSessionsInput struct {
}

type GetActiveSessionsOutput struct {
	Sessions []*models.Session
}
