package domain

// RegularityReport summarizes the regularity of a set of sleep sessions
type RegularityReport struct {
	UseUTC bool

	SessionCount int
	// Number of calendar days with recorded sleep
	DayCount int

	// Mean circular deviation of midsleep from its cyclic mean, in hours
	TimingDispersion float64
	// Mean absolute deviation of track length from its mean, in hours
	DurationDispersion float64
	// Standard deviation of sleep length, in hours
	SleepLengthStdDev float64

	MidSleepCenter Score
	AverageSRI     Score
	Irregularity   Score
}
