package main

import "time"

var DataStart = time.Date(2014, 6, 2, 0, 0, 0, 0, time.UTC)

const (
	DataSource    = "data/load_half_hourly.duckdb"
	LoadTable     = "load_half_hourly"
	TrainDays     = 21
	HarmonicOrder = 2
)
