package spdx

import "strings"

// RelationshipType is the type of a Relationship, in its canonical JSON
// spelling (e.g. "DESCRIBES", "DEPENDS_ON").
type RelationshipType string

const (
	RelationshipDescribes            RelationshipType = "DESCRIBES"
	RelationshipDescribedBy          RelationshipType = "DESCRIBED_BY"
	RelationshipContains             RelationshipType = "CONTAINS"
	RelationshipContainedBy          RelationshipType = "CONTAINED_BY"
	RelationshipDependsOn            RelationshipType = "DEPENDS_ON"
	RelationshipDependencyOf         RelationshipType = "DEPENDENCY_OF"
	RelationshipDependencyManifestOf RelationshipType = "DEPENDENCY_MANIFEST_OF"
	RelationshipBuildDependencyOf    RelationshipType = "BUILD_DEPENDENCY_OF"
	RelationshipDevDependencyOf      RelationshipType = "DEV_DEPENDENCY_OF"
	RelationshipOptionalDependencyOf RelationshipType = "OPTIONAL_DEPENDENCY_OF"
	RelationshipProvidedDependencyOf RelationshipType = "PROVIDED_DEPENDENCY_OF"
	RelationshipTestDependencyOf     RelationshipType = "TEST_DEPENDENCY_OF"
	RelationshipRuntimeDependencyOf  RelationshipType = "RUNTIME_DEPENDENCY_OF"
	RelationshipExampleOf            RelationshipType = "EXAMPLE_OF"
	RelationshipGenerates            RelationshipType = "GENERATES"
	RelationshipGeneratedFrom        RelationshipType = "GENERATED_FROM"
	RelationshipAncestorOf           RelationshipType = "ANCESTOR_OF"
	RelationshipDescendantOf         RelationshipType = "DESCENDANT_OF"
	RelationshipVariantOf            RelationshipType = "VARIANT_OF"
	RelationshipDistributionArtifact RelationshipType = "DISTRIBUTION_ARTIFACT"
	RelationshipPatchFor             RelationshipType = "PATCH_FOR"
	RelationshipPatchApplied         RelationshipType = "PATCH_APPLIED"
	RelationshipCopyOf               RelationshipType = "COPY_OF"
	RelationshipFileAdded            RelationshipType = "FILE_ADDED"
	RelationshipFileDeleted          RelationshipType = "FILE_DELETED"
	RelationshipFileModified         RelationshipType = "FILE_MODIFIED"
	RelationshipExpandedFromArchive  RelationshipType = "EXPANDED_FROM_ARCHIVE"
	RelationshipDynamicLink          RelationshipType = "DYNAMIC_LINK"
	RelationshipStaticLink           RelationshipType = "STATIC_LINK"
	RelationshipDataFileOf           RelationshipType = "DATA_FILE_OF"
	RelationshipTestCaseOf           RelationshipType = "TEST_CASE_OF"
	RelationshipBuildToolOf          RelationshipType = "BUILD_TOOL_OF"
	RelationshipDevToolOf            RelationshipType = "DEV_TOOL_OF"
	RelationshipTestOf               RelationshipType = "TEST_OF"
	RelationshipTestToolOf           RelationshipType = "TEST_TOOL_OF"
	RelationshipDocumentationOf      RelationshipType = "DOCUMENTATION_OF"
	RelationshipOptionalComponentOf  RelationshipType = "OPTIONAL_COMPONENT_OF"
	RelationshipMetafileOf           RelationshipType = "METAFILE_OF"
	RelationshipPackageOf            RelationshipType = "PACKAGE_OF"
	RelationshipAmends               RelationshipType = "AMENDS"
	RelationshipPrerequisiteFor      RelationshipType = "PREREQUISITE_FOR"
	RelationshipHasPrerequisite      RelationshipType = "HAS_PREREQUISITE"
	RelationshipRequirementDescFor   RelationshipType = "REQUIREMENT_DESCRIPTION_FOR"
	RelationshipSpecificationFor     RelationshipType = "SPECIFICATION_FOR"
	RelationshipOther                RelationshipType = "OTHER"
)

var relationshipTypes = newEnumTable(
	RelationshipDescribes, RelationshipDescribedBy, RelationshipContains,
	RelationshipContainedBy, RelationshipDependsOn, RelationshipDependencyOf,
	RelationshipDependencyManifestOf, RelationshipBuildDependencyOf,
	RelationshipDevDependencyOf, RelationshipOptionalDependencyOf,
	RelationshipProvidedDependencyOf, RelationshipTestDependencyOf,
	RelationshipRuntimeDependencyOf, RelationshipExampleOf,
	RelationshipGenerates, RelationshipGeneratedFrom, RelationshipAncestorOf,
	RelationshipDescendantOf, RelationshipVariantOf,
	RelationshipDistributionArtifact, RelationshipPatchFor,
	RelationshipPatchApplied, RelationshipCopyOf, RelationshipFileAdded,
	RelationshipFileDeleted, RelationshipFileModified,
	RelationshipExpandedFromArchive, RelationshipDynamicLink,
	RelationshipStaticLink, RelationshipDataFileOf, RelationshipTestCaseOf,
	RelationshipBuildToolOf, RelationshipDevToolOf, RelationshipTestOf,
	RelationshipTestToolOf, RelationshipDocumentationOf,
	RelationshipOptionalComponentOf, RelationshipMetafileOf,
	RelationshipPackageOf, RelationshipAmends, RelationshipPrerequisiteFor,
	RelationshipHasPrerequisite, RelationshipRequirementDescFor,
	RelationshipSpecificationFor, RelationshipOther,
)

// ParseRelationshipType accepts the JSON spelling ("DEPENDS_ON"), the RDF
// term ("relationshipType_dependsOn") or the full RDF URI. The second
// result is false for values outside the SPDX vocabulary, in which case
// the raw value is returned unchanged.
func ParseRelationshipType(s string) (RelationshipType, bool) {
	return relationshipTypes.parse(s, "relationshipType_")
}

// ChecksumAlgorithm is a checksum algorithm name ("SHA1", "SHA3-256", ...).
type ChecksumAlgorithm string

const (
	ChecksumSHA1       ChecksumAlgorithm = "SHA1"
	ChecksumSHA224     ChecksumAlgorithm = "SHA224"
	ChecksumSHA256     ChecksumAlgorithm = "SHA256"
	ChecksumSHA384     ChecksumAlgorithm = "SHA384"
	ChecksumSHA512     ChecksumAlgorithm = "SHA512"
	ChecksumMD2        ChecksumAlgorithm = "MD2"
	ChecksumMD4        ChecksumAlgorithm = "MD4"
	ChecksumMD5        ChecksumAlgorithm = "MD5"
	ChecksumMD6        ChecksumAlgorithm = "MD6"
	ChecksumSHA3_256   ChecksumAlgorithm = "SHA3-256"
	ChecksumSHA3_384   ChecksumAlgorithm = "SHA3-384"
	ChecksumSHA3_512   ChecksumAlgorithm = "SHA3-512"
	ChecksumBLAKE2b256 ChecksumAlgorithm = "BLAKE2b-256"
	ChecksumBLAKE2b384 ChecksumAlgorithm = "BLAKE2b-384"
	ChecksumBLAKE2b512 ChecksumAlgorithm = "BLAKE2b-512"
	ChecksumBLAKE3     ChecksumAlgorithm = "BLAKE3"
	ChecksumADLER32    ChecksumAlgorithm = "ADLER32"
)

var checksumAlgorithms = newEnumTable(
	ChecksumSHA1, ChecksumSHA224, ChecksumSHA256, ChecksumSHA384,
	ChecksumSHA512, ChecksumMD2, ChecksumMD4, ChecksumMD5, ChecksumMD6,
	ChecksumSHA3_256, ChecksumSHA3_384, ChecksumSHA3_512,
	ChecksumBLAKE2b256, ChecksumBLAKE2b384, ChecksumBLAKE2b512,
	ChecksumBLAKE3, ChecksumADLER32,
)

// ParseChecksumAlgorithm accepts "SHA1", "checksumAlgorithm_sha1" or the
// full RDF URI.
func ParseChecksumAlgorithm(s string) (ChecksumAlgorithm, bool) {
	return checksumAlgorithms.parse(s, "checksumAlgorithm_")
}

// AnnotationType is REVIEW or OTHER.
type AnnotationType string

const (
	AnnotationReview AnnotationType = "REVIEW"
	AnnotationOther  AnnotationType = "OTHER"
)

var annotationTypes = newEnumTable(AnnotationReview, AnnotationOther)

// ParseAnnotationType accepts "REVIEW", "annotationType_review" or the
// full RDF URI.
func ParseAnnotationType(s string) (AnnotationType, bool) {
	return annotationTypes.parse(s, "annotationType_")
}

// FileType classifies a File.
type FileType string

const (
	FileTypeSource        FileType = "SOURCE"
	FileTypeBinary        FileType = "BINARY"
	FileTypeArchive       FileType = "ARCHIVE"
	FileTypeApplication   FileType = "APPLICATION"
	FileTypeAudio         FileType = "AUDIO"
	FileTypeImage         FileType = "IMAGE"
	FileTypeText          FileType = "TEXT"
	FileTypeVideo         FileType = "VIDEO"
	FileTypeDocumentation FileType = "DOCUMENTATION"
	FileTypeSPDX          FileType = "SPDX"
	FileTypeOther         FileType = "OTHER"
)

var fileTypes = newEnumTable(
	FileTypeSource, FileTypeBinary, FileTypeArchive, FileTypeApplication,
	FileTypeAudio, FileTypeImage, FileTypeText, FileTypeVideo,
	FileTypeDocumentation, FileTypeSPDX, FileTypeOther,
)

// ParseFileType accepts "SOURCE", "fileType_source" or the full RDF URI.
func ParseFileType(s string) (FileType, bool) {
	return fileTypes.parse(s, "fileType_")
}

// ReferenceCategory is the category of a package external reference.
type ReferenceCategory string

const (
	CategorySecurity       ReferenceCategory = "SECURITY"
	CategoryPackageManager ReferenceCategory = "PACKAGE-MANAGER"
	CategoryPersistentID   ReferenceCategory = "PERSISTENT-ID"
	CategoryOther          ReferenceCategory = "OTHER"
)

var referenceCategories = newEnumTable(
	CategorySecurity, CategoryPackageManager, CategoryPersistentID, CategoryOther,
)

// ParseReferenceCategory accepts "PACKAGE-MANAGER", the SPDX 2.2 spelling
// "PACKAGE_MANAGER", "referenceCategory_packageManager" or the full RDF URI.
func ParseReferenceCategory(s string) (ReferenceCategory, bool) {
	return referenceCategories.parse(s, "referenceCategory_")
}

// PackagePurpose is the primary purpose of a package.
type PackagePurpose string

const (
	PurposeApplication     PackagePurpose = "APPLICATION"
	PurposeFramework       PackagePurpose = "FRAMEWORK"
	PurposeLibrary         PackagePurpose = "LIBRARY"
	PurposeContainer       PackagePurpose = "CONTAINER"
	PurposeOperatingSystem PackagePurpose = "OPERATING-SYSTEM"
	PurposeDevice          PackagePurpose = "DEVICE"
	PurposeFirmware        PackagePurpose = "FIRMWARE"
	PurposeSource          PackagePurpose = "SOURCE"
	PurposeArchive         PackagePurpose = "ARCHIVE"
	PurposeFile            PackagePurpose = "FILE"
	PurposeInstall         PackagePurpose = "INSTALL"
	PurposeOther           PackagePurpose = "OTHER"
)

var packagePurposes = newEnumTable(
	PurposeApplication, PurposeFramework, PurposeLibrary, PurposeContainer,
	PurposeOperatingSystem, PurposeDevice, PurposeFirmware, PurposeSource,
	PurposeArchive, PurposeFile, PurposeInstall, PurposeOther,
)

// ParsePackagePurpose accepts "OPERATING-SYSTEM", "purpose_operatingSystem"
// or the full RDF URI.
func ParsePackagePurpose(s string) (PackagePurpose, bool) {
	return packagePurposes.parse(s, "purpose_")
}

// enumTable maps spelling-insensitive keys to canonical values. Keys drop
// case and the separators '_' and '-', so "dependsOn", "DEPENDS_ON" and
// "depends-on" all meet at "DEPENDSON".
type enumTable[T ~string] map[string]T

func newEnumTable[T ~string](values ...T) enumTable[T] {
	t := make(enumTable[T], len(values))
	for _, v := range values {
		t[enumKey(string(v))] = v
	}
	return t
}

func (t enumTable[T]) parse(s, termPrefix string) (T, bool) {
	term := strings.TrimSpace(s)
	if i := strings.LastIndexByte(term, '#'); i >= 0 {
		term = term[i+1:]
	}
	term = strings.TrimPrefix(term, termPrefix)
	if v, ok := t[enumKey(term)]; ok {
		return v, true
	}
	return T(strings.TrimSpace(s)), false
}

func enumKey(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c == '_' || c == '-':
			continue
		case c >= 'a' && c <= 'z':
			b.WriteByte(c - 'a' + 'A')
		default:
			b.WriteByte(c)
		}
	}
	return b.String()
}
