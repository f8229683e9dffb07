package helper

import (
	"encoding/json"
)

// CronJobKey model
type CronJobKey struct {
	JobName  string `json:"jobName"`
	Args     string `json:"args"`
	Interval string `json:"interval"`
}

// String implement stringer
func (c CronJobKey) String() string {
	b, _ := json.Marshal(c)
	return string(b)
}

// CronJobKeyToString helper
/*
Allowed interval:

* standard time duration string, example: 2s, 10m
*/
func CronJobKeyToString(jobName, args, interval string) string {
	return CronJobKey{
		JobName: jobName, Args: args, Interval: interval,
	}.String()
}

// ParseCronJobKey helper
func ParseCronJobKey(str string) (jobName, args, interval string) {
	var cronKey CronJobKey
	json.Unmarshal([]byte(str), &cronKey)
	return cronKey.JobName, cronKey.Args, cronKey.Interval
}
