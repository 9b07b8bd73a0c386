package activity

type EntryType string

const (
	EntryAnimalRegistered EntryType = "ANIMAL_REGISTERED"
	EntryProfileUpdated   EntryType = "PROFILE_UPDATED"
	EntryTreatmentLogged  EntryType = "TREATMENT_LOGGED"
	EntryCheckupRecorded  EntryType = "CHECKUP_RECORDED"
	EntryBreedingRecorded EntryType = "BREEDING_RECORDED"
)

func (t EntryType) Valid() bool {
	switch t {
	case EntryAnimalRegistered, EntryProfileUpdated, EntryTreatmentLogged, EntryCheckupRecorded, EntryBreedingRecorded:
		return true
	}
	return false
}

// ActorAnonymous se usa cuando el request no trae X-Actor-ID.
const ActorAnonymous = "anonymous"
