package cache

import (
	"encoding/binary"
	"encoding/hex"
	"math"

	"github.com/cespare/xxhash/v2"
	"github.com/rpgo/fire-projector/internal/domain"
)

// KeyPrefix namespaces projection entries in shared stores.
const KeyPrefix = "proj:"

// Key derives a stable cache key from the projection inputs. Floats are
// hashed by bit pattern, so NaN inputs still produce a key.
func Key(params domain.ProjectionParameters, maxYears int) string {
	d := xxhash.New()
	var buf [8]byte
	for _, v := range []float64{
		params.InitialPortfolio,
		params.InitialIncome,
		params.InitialExpenses,
		params.IncomeGrowthRate,
		params.ExpenseGrowthRate,
		params.XIRR,
		params.TargetValue,
		params.InitialPostTaxIncome,
		params.InflationRate,
	} {
		binary.LittleEndian.PutUint64(buf[:], math.Float64bits(v))
		_, _ = d.Write(buf[:])
	}
	var flag byte
	if params.AdjustForInflation {
		flag = 1
	}
	_, _ = d.Write([]byte{flag})
	binary.LittleEndian.PutUint64(buf[:], uint64(maxYears))
	_, _ = d.Write(buf[:])

	binary.BigEndian.PutUint64(buf[:], d.Sum64())
	return KeyPrefix + hex.EncodeToString(buf[:])
}
