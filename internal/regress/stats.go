package regress

// EvalStats summarizes model fit quality on one data split.
type EvalStats struct {
	RMSE float64 `json:"rmse"`
	MAE  float64 `json:"mae"`
	R2   float64 `json:"r2"`
}

// Evaluate scores a fitted model against a labelled split.
func Evaluate(m Regressor, x [][]float64, y []float64) EvalStats {
	pred := make([]float64, len(y))
	for i, row := range x {
		pred[i] = m.Predict(row)
	}
	return EvalStats{
		RMSE: RMSE(y, pred),
		MAE:  MAE(y, pred),
		R2:   R2(y, pred),
	}
}
