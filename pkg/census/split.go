package census

import (
	"math/rand"

	"tabprep/pkg/table"
)

// TrainTestSplit shuffles the rows with the given seed and splits them into
// train and test partitions by ratio.
func TrainTestSplit(t *table.Table, y []float64, testRatio float64, seed int64) (train *table.Table, test *table.Table, yTrain, yTest []float64) {
	n := t.Rows()
	indices := rand.New(rand.NewSource(seed)).Perm(n)
	nTest := int(float64(n) * testRatio)

	testIdx := indices[:nTest]
	trainIdx := indices[nTest:]

	train = t.TakeRows(trainIdx)
	test = t.TakeRows(testIdx)
	yTrain = make([]float64, len(trainIdx))
	for i, idx := range trainIdx {
		yTrain[i] = y[idx]
	}
	yTest = make([]float64, len(testIdx))
	for i, idx := range testIdx {
		yTest[i] = y[idx]
	}
	return train, test, yTrain, yTest
}
