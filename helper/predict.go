package helper

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"

	"github.com/sjwhitworth/golearn/base"
	"github.com/sjwhitworth/golearn/linear_models"
	"gorm.io/gorm"

	"github.com/juancarlosGilardi/flask-marcaciones/models"
)

func timeToMinutes(timeStr string) float64 {
	parts := strings.Split(timeStr, ":")
	if len(parts) < 2 {
		return 0
	}
	hours, _ := strconv.Atoi(parts[0])
	minutes, _ := strconv.Atoi(parts[1])
	return float64(hours*60 + minutes)
}

func minutesToTime(minutes float64) string {
	if minutes < 0 {
		minutes = 0
	}
	hours := int(minutes/60) % 24
	mins := int(minutes) % 60
	return fmt.Sprintf("%02d:%02d", hours, mins)
}

// PredictExitTime fits a linear regression over past (entry, exit) pairs and
// estimates today's exit time from the entry time. History entries are
// [entry, exit] clock strings.
func PredictExitTime(history [][2]string, entryTime string) (string, error) {
	if len(history) == 0 {
		return "", fmt.Errorf("no training data available")
	}

	var csvBuffer bytes.Buffer
	csvBuffer.WriteString("exit_min,entry_min\n")
	for _, record := range history {
		entryMinutes := timeToMinutes(record[0])
		exitMinutes := timeToMinutes(record[1])
		csvBuffer.WriteString(fmt.Sprintf("%.2f,%.2f\n", exitMinutes, entryMinutes))
	}

	instances, err := base.ParseCSVToInstances(csvBuffer.String(), true)
	if err != nil {
		return "", fmt.Errorf("failed to parse training data: %w", err)
	}

	model := linear_models.NewLinearRegression()
	if err := model.Fit(instances); err != nil {
		return "", fmt.Errorf("failed to train model: %w", err)
	}

	entryMinutes := timeToMinutes(entryTime)
	predCSV := fmt.Sprintf("exit_min,entry_min\n0.0,%.2f\n", entryMinutes)

	predInstances, err := base.ParseCSVToInstances(predCSV, true)
	if err != nil {
		return "", fmt.Errorf("failed to parse prediction data: %w", err)
	}

	predictions, err := model.Predict(predInstances)
	if err != nil {
		return "", fmt.Errorf("prediction failed: %w", err)
	}

	classAttrs := predictions.AllClassAttributes()
	if len(classAttrs) == 0 {
		return "", fmt.Errorf("no class attribute in predictions")
	}

	classSpec := base.ResolveAttributes(predictions, classAttrs)[0]
	predictedBytes := predictions.Get(classSpec, 0)
	predictedMinutes := base.UnpackBytesToFloat(predictedBytes)

	return minutesToTime(predictedMinutes), nil
}

// ExitTimeTrainingData collects the user's last closed days as
// [entry, exit] pairs for PredictExitTime.
func ExitTimeTrainingData(db *gorm.DB, email string) ([][2]string, error) {
	var recent []models.AttendanceRecord
	err := db.Where("user_email = ? AND exit_time IS NOT NULL", email).
		Order("marking_date desc").
		Limit(10).
		Find(&recent).Error
	if err != nil {
		return nil, err
	}

	var history [][2]string
	for _, rec := range recent {
		if rec.EntryTime != nil && rec.ExitTime != nil {
			history = append(history, [2]string{*rec.EntryTime, *rec.ExitTime})
		}
	}
	return history, nil
}
