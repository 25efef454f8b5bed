package classifier

// ClassNames are the model's output labels in index order. The artifact's
// output vector must have exactly len(ClassNames) entries.
var ClassNames = [...]string{"Early Blight", "Late Blight", "Healthy"}

// NumClasses is len(ClassNames).
const NumClasses = len(ClassNames)

// Classes returns a copy of ClassNames as a slice.
func Classes() []string {
	out := make([]string, NumClasses)
	copy(out, ClassNames[:])
	return out
}
