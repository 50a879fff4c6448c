package usecase

import "github.com/riskibarqy/esport-datanal/internal/domain/unitofwork"

type (
	Store      = unitofwork.Store
	Transactor = unitofwork.Transactor
)
