package contracts

import "time"

type InputFlags struct {
	InputPath     string
	ReportPath    string
	JSONPath      string
	ConfigPath    string
	LogFormat     string
	Workers       int
	MinScore      int
	DecodeTimeout time.Duration
}
