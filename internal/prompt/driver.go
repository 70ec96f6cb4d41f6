// Package prompt drives the registration wizard with line-oriented terminal
// prompts instead of the full-screen interface.
package prompt

import (
	"context"
	"errors"

	"github.com/AlecAivazis/survey/v2"
	"github.com/AlecAivazis/survey/v2/terminal"
)

// ErrAborted is returned when the user interrupts a prompt.
var ErrAborted = errors.New("prompt aborted")

// InputConfig configures a text prompt.
type InputConfig struct {
	Message   string
	Default   string
	Help      string
	Validator func(string) error
}

// SelectConfig configures a single or multi-select prompt.
type SelectConfig struct {
	Message      string
	Options      []string
	Descriptions []string
	DefaultIndex int   // -1 for none
	Defaults     []int // multi-select only
	PageSize     int
	// Validator checks the chosen indices of a multi-select.
	Validator func([]int) error
}

// Driver asks the questions. Tests substitute a scripted driver.
type Driver interface {
	Input(ctx context.Context, cfg InputConfig) (string, error)
	Select(ctx context.Context, cfg SelectConfig) (int, error)
	MultiSelect(ctx context.Context, cfg SelectConfig) ([]int, error)
	Confirm(ctx context.Context, message string, def bool) (bool, error)
}

// SurveyDriver asks on the controlling terminal.
type SurveyDriver struct{}

// Input implements Driver.
func (SurveyDriver) Input(ctx context.Context, cfg InputConfig) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	var out string
	p := &survey.Input{Message: cfg.Message, Default: cfg.Default, Help: cfg.Help}
	var opts []survey.AskOpt
	if cfg.Validator != nil {
		opts = append(opts, survey.WithValidator(func(ans any) error {
			s, _ := ans.(string)
			return cfg.Validator(s)
		}))
	}
	if err := survey.AskOne(p, &out, opts...); err != nil {
		return "", translate(err)
	}
	return out, nil
}

// Select implements Driver.
func (SurveyDriver) Select(ctx context.Context, cfg SelectConfig) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	var out int
	p := &survey.Select{Message: cfg.Message, Options: cfg.Options, PageSize: cfg.PageSize}
	if cfg.DefaultIndex >= 0 && cfg.DefaultIndex < len(cfg.Options) {
		p.Default = cfg.Options[cfg.DefaultIndex]
	}
	if len(cfg.Descriptions) == len(cfg.Options) {
		p.Description = func(_ string, i int) string { return cfg.Descriptions[i] }
	}
	if err := survey.AskOne(p, &out); err != nil {
		return 0, translate(err)
	}
	return out, nil
}

// MultiSelect implements Driver.
func (SurveyDriver) MultiSelect(ctx context.Context, cfg SelectConfig) ([]int, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	var out []int
	p := &survey.MultiSelect{Message: cfg.Message, Options: cfg.Options, PageSize: cfg.PageSize}
	for _, i := range cfg.Defaults {
		if i >= 0 && i < len(cfg.Options) {
			p.Default = append(toStrings(p.Default), cfg.Options[i])
		}
	}
	var opts []survey.AskOpt
	if cfg.Validator != nil {
		opts = append(opts, survey.WithValidator(func(ans any) error {
			picked, _ := ans.([]survey.OptionAnswer)
			idx := make([]int, len(picked))
			for i, p := range picked {
				idx[i] = p.Index
			}
			return cfg.Validator(idx)
		}))
	}
	if err := survey.AskOne(p, &out, opts...); err != nil {
		return nil, translate(err)
	}
	return out, nil
}

// Confirm implements Driver.
func (SurveyDriver) Confirm(ctx context.Context, message string, def bool) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	var out bool
	if err := survey.AskOne(&survey.Confirm{Message: message, Default: def}, &out); err != nil {
		return false, translate(err)
	}
	return out, nil
}

func toStrings(v any) []string {
	s, _ := v.([]string)
	return s
}

func translate(err error) error {
	if errors.Is(err, terminal.InterruptErr) {
		return ErrAborted
	}
	return err
}
