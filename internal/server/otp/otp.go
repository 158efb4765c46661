// Package otp issues the one-time codes mailed to new accounts.
package otp

import (
	"crypto/rand"
	"fmt"
	"math/big"
)

const (
	Min    = 100000
	Max    = 999999
	Digits = 6
)

type Generator interface {
	Generate() (string, error)
}

// RandomGenerator draws codes uniformly from [Min, Max] using crypto/rand.
type RandomGenerator struct{}

func NewRandomGenerator() *RandomGenerator {
	return &RandomGenerator{}
}

func (g *RandomGenerator) Generate() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(Max-Min+1))
	if err != nil {
		return "", fmt.Errorf("otp: %w", err)
	}
	return fmt.Sprintf("%06d", n.Int64()+Min), nil
}

// Fixed always returns the same code. Intended for tests and local demos.
type Fixed string

func (f Fixed) Generate() (string, error) {
	return string(f), nil
}
